package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSender_Valid(t *testing.T) {
	assert.True(t, SenderUser.Valid())
	assert.True(t, SenderBot.Valid())
	assert.False(t, Sender("").Valid())
	assert.False(t, Sender("admin").Valid())
}
