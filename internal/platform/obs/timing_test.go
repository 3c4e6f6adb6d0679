package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "abc-123")

	func() (err error) {
		defer Time(ctx, "dropper.Book")(&err)
		return errors.New("boom")
	}()

	out := buf.String()
	assert.Contains(t, out, "req_id=abc-123 op=dropper.Book")
	assert.Contains(t, out, "err=boom")
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))

	buf := captureLog(t)
	Logf(context.Background(), "bag=%s", "SPL-1")
	assert.Equal(t, "req_id= bag=SPL-1\n", buf.String())
}
