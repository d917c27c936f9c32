package models

import "time"

// Nomes das colunas do arquivo (após trim). O resto do sistema depende de match exato.
const (
	ColCode             = "Código da Vaga"
	ColTitle            = "Título do Cargo"
	ColGroup            = "Grupo Econômico"
	ColState            = "UF da OI"
	ColLifecycleStatus  = "Status da Vaga"
	ColInternalStatus   = "STATUS"
	ColRecruitmentStart = "Recrutamento e Seleção"
	ColDaysOpen         = "Dias em Aberto"
	ColSLASituation     = "Situação Vagas"
	ColReason           = "Descrição do Motivo"
)

// RequiredColumns na ordem em que aparecem no export.
var RequiredColumns = []string{
	ColCode,
	ColTitle,
	ColGroup,
	ColState,
	ColLifecycleStatus,
	ColInternalStatus,
	ColRecruitmentStart,
	ColDaysOpen,
	ColSLASituation,
	ColReason,
}

const (
	// InternalStatusDefault substitui STATUS vazio.
	InternalStatusDefault = "Não especificado"
	// SLABreach é o valor de "Situação Vagas" que conta como fora do SLA.
	SLABreach = "Fora do SLA"
	// LifecycleFilled é o status terminal (vaga preenchida).
	LifecycleFilled = "Finalizado - Vaga Preenchida"
)

type Requisition struct {
	Code             string    `json:"codigo_vaga" bson:"codigo_vaga"`
	Title            string    `json:"titulo_cargo" bson:"titulo_cargo"`
	Group            string    `json:"grupo_economico" bson:"grupo_economico"`
	State            string    `json:"uf" bson:"uf"`
	LifecycleStatus  string    `json:"status_vaga" bson:"status_vaga"`
	InternalStatus   string    `json:"status_interno" bson:"status_interno"`
	RecruitmentStart time.Time `json:"recrutamento_selecao" bson:"recrutamento_selecao"`
	DaysOpen         *float64  `json:"dias_em_aberto,omitempty" bson:"dias_em_aberto,omitempty"` // nil = não numérico
	SLASituation     string    `json:"situacao_vagas" bson:"situacao_vagas"`
	Reason           string    `json:"descricao_motivo" bson:"descricao_motivo"`
}

// Table é o dataset carregado. Dropped conta linhas descartadas por data inválida.
type Table struct {
	Rows    []Requisition
	Dropped int
}

func (t Table) Len() int { return len(t.Rows) }
