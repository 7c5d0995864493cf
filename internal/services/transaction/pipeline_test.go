package transaction

import (
	"context"
	"testing"

	"paylink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStage struct {
	name string
	err  error
	ran  *[]string
}

func (s stubStage) Name() string { return s.name }

func (s stubStage) Handle(_ context.Context, _ *Request) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func TestPipeline_Run(t *testing.T) {
	req := &Request{Kind: models.TypeDeposit}

	t.Run("runs every stage in order", func(t *testing.T) {
		var ran []string
		p := NewPipeline(nil,
			stubStage{name: "first", ran: &ran},
			stubStage{name: "second", ran: &ran},
			stubStage{name: "third", ran: &ran},
		)
		require.NoError(t, p.Run(context.Background(), req))
		assert.Equal(t, []string{"first", "second", "third"}, ran)
	})

	t.Run("short-circuits on the first failure", func(t *testing.T) {
		var ran []string
		p := NewPipeline(nil,
			stubStage{name: "first", ran: &ran},
			stubStage{name: "second", ran: &ran, err: assert.AnError},
			stubStage{name: "third", ran: &ran},
		)
		err := p.Run(context.Background(), req)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, []string{"first", "second"}, ran)
	})

	t.Run("empty pipeline passes", func(t *testing.T) {
		assert.NoError(t, NewPipeline(nil).Run(context.Background(), req))
	})
}
