package objpool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_PutResets(t *testing.T) {
	p := New(func() *bytes.Buffer { return new(bytes.Buffer) })

	buf := p.Get()
	buf.WriteString("payload")
	p.Put(buf)

	assert.Equal(t, 0, buf.Len())
	assert.NotNil(t, p.Get())
}
