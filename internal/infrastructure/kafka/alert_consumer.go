// Package kafka consume el topic de alertas y las entrega al feed en memoria.
package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/pkg/logger"
)

// ReaderConfig conexión al topic.
type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Reader subconjunto de *kafka.Reader que usa el consumidor.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Sink destino de las alertas (alerts.Feed).
type Sink interface {
	Push(alerts ...entity.Alert) int
}

// NewReader construye el lector con consumer group; los offsets se confirman a mano.
func NewReader(cfg ReaderConfig) (*kafka.Reader, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, errors.New("kafka: brokers y topic son obligatorios")
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		MaxWait:        time.Second,
		CommitInterval: 0,
		StartOffset:    kafka.LastOffset,
	}), nil
}

// AlertConsumer lee mensajes (una alerta o un arreglo de alertas en JSON) y los empuja al feed.
type AlertConsumer struct {
	r       Reader
	sink    Sink
	log     *logger.Logger
	backoff time.Duration
}

// NewAlertConsumer construye el consumidor.
func NewAlertConsumer(r Reader, sink Sink, log *logger.Logger) *AlertConsumer {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertConsumer{r: r, sink: sink, log: log, backoff: time.Second}
}

// Run consume hasta que ctx se cancela. Un mensaje ilegible se registra y se confirma
// para no bloquear la partición.
func (c *AlertConsumer) Run(ctx context.Context) error {
	defer c.r.Close()
	c.log.Info().Msg("kafka: consumidor de alertas iniciado")
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info().Msg("kafka: consumidor de alertas detenido")
				return nil
			}
			c.log.Error().Err(err).Msg("kafka: fetch")
			if serr := sleep(ctx, c.backoff); serr != nil {
				return nil
			}
			continue
		}

		alerts, derr := Decode(msg.Value)
		if derr != nil {
			c.log.Warn().Err(derr).Int64("offset", msg.Offset).Int("partition", msg.Partition).Msg("kafka: mensaje descartado")
		} else {
			n := c.sink.Push(alerts...)
			c.log.Debug().Int("received", len(alerts)).Int("new", n).Msg("kafka: alertas recibidas")
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("kafka: commit")
		}
	}
}

// Decode acepta un objeto o un arreglo de alertas.
func Decode(b []byte) ([]entity.Alert, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("kafka: mensaje vacío")
	}
	if b[0] == '[' {
		var out []entity.Alert
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("kafka: decodificar alertas: %w", err)
		}
		return out, nil
	}
	var a entity.Alert
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("kafka: decodificar alerta: %w", err)
	}
	if a.Type == "" {
		return nil, errors.New("kafka: alerta sin tipo")
	}
	return []entity.Alert{a}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
