package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderReminder(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	t.Run("with address", func(t *testing.T) {
		msg := RenderReminder("Mette", at, "Nørregade 12, København")
		assert.Equal(t, "Hi Mette, a reminder about your car wash tomorrow at 10:30. Location: Nørregade 12, København.", msg)
	})

	t.Run("without address", func(t *testing.T) {
		msg := RenderReminder("Mette", at, "")
		assert.Equal(t, "Hi Mette, a reminder about your car wash tomorrow at 10:30.", msg)
	})
}
