package gateway

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultSeqLen        = 2048
	defaultQueueCapacity = 100
	defaultPollInterval  = 10 * time.Millisecond
	defaultMaxGenTokens  = 512
)

// Config encapsulates all tunables for Gateway construction.
type Config struct {
	// SeqLen is the fixed model window every batch row is padded or
	// truncated to.
	SeqLen int
	// PadTokenID fills the left padding of short rows.
	PadTokenID uint32
	// QueueCapacity bounds the admission queue; submissions beyond it are
	// rejected immediately.
	QueueCapacity int
	// PollInterval bounds each worker wait on the queue so shutdown and
	// state reporting stay responsive.
	PollInterval time.Duration
	// RequestTimeout caps how long Complete waits for a result. Zero means
	// wait forever.
	RequestTimeout time.Duration
	// MaxGenTokens rejects jobs asking for more tokens per context.
	MaxGenTokens int
	// Logger receives gateway logs. Nil means discard.
	Logger *zerolog.Logger
	// Events receives lifecycle events. Defaults to a no-op publisher.
	Events EventPublisher
}

func (c Config) withDefaults() Config {
	if c.SeqLen <= 0 {
		c.SeqLen = defaultSeqLen
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = defaultQueueCapacity
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MaxGenTokens <= 0 {
		c.MaxGenTokens = defaultMaxGenTokens
	}
	if c.Events == nil {
		c.Events = noopPublisher{}
	}
	return c
}
