package broker

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const EventDatasetReplaced = "dataset_replaced"

// DatasetEvent avisa que o dataset mudou; Token é o sinal de invalidação das telas.
type DatasetEvent struct {
	ID       string    `json:"id"`
	Event    string    `json:"event"`
	Token    string    `json:"token"`
	Filename string    `json:"filename"`
	Bytes    int       `json:"bytes"`
	By       string    `json:"by"`
	At       time.Time `json:"at"`
}

func NewDatasetReplaced(token, filename string, size int, by string) DatasetEvent {
	return DatasetEvent{
		ID:       uuid.NewString(),
		Event:    EventDatasetReplaced,
		Token:    token,
		Filename: filename,
		Bytes:    size,
		By:       by,
		At:       time.Now().UTC(),
	}
}

func (e DatasetEvent) Body() ([]byte, error) {
	return json.Marshal(e)
}

func (e DatasetEvent) Headers() amqp.Table {
	return amqp.Table{
		"event":     e.Event,
		"event_id":  e.ID,
		"token":     e.Token,
		"filename":  e.Filename,
		"by":        e.By,
		"timestamp": e.At.Format(time.RFC3339),
	}
}

// ParseDatasetEvent lê o corpo vindo da fila.
func ParseDatasetEvent(body []byte) (DatasetEvent, error) {
	var e DatasetEvent
	err := json.Unmarshal(body, &e)
	return e, err
}
