package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxFIFO(t *testing.T) {
	m := newMailbox(0)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.push(envelope{message: &CountMessage{Value: i}}))
	}
	assert.Equal(t, 5, m.Len())

	for i := 0; i < 5; i++ {
		env, ok := m.pop()
		require.True(t, ok)
		assert.Equal(t, i, env.message.(*CountMessage).Value)
	}

	_, ok := m.pop()
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMailboxSignal(t *testing.T) {
	m := newMailbox(0)

	require.NoError(t, m.push(envelope{message: &PingMessage{}}))
	require.NoError(t, m.push(envelope{message: &PingMessage{}}))

	// 多次 push 只保留一个唤醒信号
	assert.Len(t, m.signal, 1)
}

func TestMailboxCapacity(t *testing.T) {
	m := newMailbox(1)

	require.NoError(t, m.push(envelope{message: &PingMessage{}}))
	assert.ErrorIs(t, m.push(envelope{message: &PingMessage{}}), ErrMailboxFull)

	// 系统消息不受容量限制
	assert.NoError(t, m.pushSystem(envelope{message: &PoisonPill{}}))
	assert.Equal(t, 2, m.Len())
}

func TestMailboxClose(t *testing.T) {
	m := newMailbox(0)

	require.NoError(t, m.push(envelope{message: &PingMessage{}}))
	require.NoError(t, m.push(envelope{message: &PongMessage{}}))

	rest := m.close()
	assert.Len(t, rest, 2)
	assert.Equal(t, 0, m.Len())

	assert.ErrorIs(t, m.push(envelope{message: &PingMessage{}}), ErrActorStopped)
	assert.ErrorIs(t, m.pushSystem(envelope{message: &PoisonPill{}}), ErrActorStopped)
}
