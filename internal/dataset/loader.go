// Package dataset lê o arquivo de vagas (';', UTF-8 ou Latin-1) para uma models.Table tipada.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

// DateLayout aceita dia/mês com um ou dois dígitos (01/06/2024, 1/6/2024).
const DateLayout = "2/1/2006"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataFormatError: encoding ilegível, CSV quebrado ou coluna obrigatória ausente.
type DataFormatError struct {
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data format: %s: %v", e.Reason, e.Err)
	}
	return "data format: " + e.Reason
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// Load lê o arquivo em path. Erro de abertura volta sem embrulho (ex.: os.ErrNotExist).
func Load(path string) (models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Table{}, err
	}
	return Parse(data)
}

// Parse tenta UTF-8 e, se os bytes não forem UTF-8 válido, Latin-1.
func Parse(data []byte) (models.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	records, err := readRecords(r)
	if err != nil {
		return models.Table{}, &DataFormatError{Reason: "invalid delimited text", Err: err}
	}
	if len(records) == 0 {
		return models.Table{}, &DataFormatError{Reason: "empty file"}
	}
	return buildTable(records)
}

func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var out [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func buildTable(records [][]string) (models.Table, error) {
	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range models.RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return models.Table{}, &DataFormatError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}

	t := models.Table{Rows: make([]models.Requisition, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		get := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		start, ok := ParseDate(get(models.ColRecruitmentStart))
		if !ok {
			t.Dropped++
			continue
		}

		status := strings.TrimSpace(get(models.ColInternalStatus))
		if status == "" {
			status = models.InternalStatusDefault
		}

		t.Rows = append(t.Rows, models.Requisition{
			Code:             get(models.ColCode),
			Title:            get(models.ColTitle),
			Group:            get(models.ColGroup),
			State:            get(models.ColState),
			LifecycleStatus:  get(models.ColLifecycleStatus),
			InternalStatus:   status,
			RecruitmentStart: start,
			DaysOpen:         parseNumber(get(models.ColDaysOpen)),
			SLASituation:     get(models.ColSLASituation),
			Reason:           get(models.ColReason),
		})
	}
	return t, nil
}

// ParseDate interpreta dd/mm/yyyy; qualquer outra coisa é "sem data".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// parseNumber aceita "12", "12.5" e "12,5". Não numérico vira nil (fica fora da média).
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return nil
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
