package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendWithoutNotifierIsDropped(t *testing.T) {
	assert.NotPanics(t, func() {
		Send(context.Background(), LevelInfo, "nobody listening")
	})
}

func TestRecorderKeepsOrder(t *testing.T) {
	rec := &Recorder{}
	ctx := WithNotifier(context.Background(), rec)

	Send(ctx, LevelWarning, MsgLargeImage)
	Send(ctx, LevelSuccess, MsgItemAdded)

	assert.Equal(t, []Notice{
		{Level: LevelWarning, Message: MsgLargeImage},
		{Level: LevelSuccess, Message: MsgItemAdded},
	}, rec.Notices())
}

func TestFunc(t *testing.T) {
	var got []string
	ctx := WithNotifier(context.Background(), Func(func(_ context.Context, n Notice) {
		got = append(got, string(n.Level)+":"+n.Message)
	}))

	Send(ctx, LevelError, "oops")
	assert.Equal(t, []string{"error:oops"}, got)
}
