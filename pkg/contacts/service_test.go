package contacts

import (
	"fmt"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lwmacct/251215-go-pkg-contacts/pkg/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// ============== 测试辅助 ==============

type unknownMessage struct {
	ReplyTo *actor.PID
}

func (m *unknownMessage) Kind() string { return "test.unknown" }

func newTestSystem(t *testing.T) *actor.System {
	t.Helper()
	sys := actor.NewSystemWithConfig("contacts-test", &actor.SystemConfig{
		PanicHandler: func(*actor.PID, actor.Message, any) {},
	})
	t.Cleanup(func() { sys.ShutdownWithTimeout(time.Second) })
	return sys
}

func spawnClient(t *testing.T, initial Store, opts ...Option) *Client {
	t.Helper()
	pid, err := Spawn(newTestSystem(t), "contacts", initial, opts...)
	require.NoError(t, err)
	return NewClient(pid, time.Second)
}

func sequentialIDs(prefix string) func() ContactID {
	n := 0
	return func() ContactID {
		n++
		return ContactID(fmt.Sprintf("%s-%d", prefix, n))
	}
}

func idSet(cs []Contact) mapset.Set[ContactID] {
	s := mapset.NewThreadUnsafeSet[ContactID]()
	for _, c := range cs {
		s.Add(c.ID)
	}
	return s
}

// ============== 测试用例 ==============

func TestSeedGetAll(t *testing.T) {
	client := spawnClient(t, SeedStore())

	all, err := client.List()
	require.NoError(t, err)

	assert.ElementsMatch(t, SeedContacts(), all)
	assert.True(t, idSet(all).Equal(mapset.NewThreadUnsafeSet[ContactID]("abc-123", "def-456")))
}

func TestCreateUniqueIDs(t *testing.T) {
	client := spawnClient(t, SeedStore())

	const n = 200
	created := make([]Contact, n)

	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			c, err := client.Create(NewPatch().WithName(fmt.Sprintf("user-%d", i)))
			created[i] = c
			return err
		})
	}
	require.NoError(t, g.Wait())

	ids := idSet(created)
	assert.Equal(t, n, ids.Cardinality())
	assert.False(t, ids.Contains("abc-123"))

	all, err := client.List()
	require.NoError(t, err)
	assert.Len(t, all, n+2)
}

func TestCreateReadYourWrite(t *testing.T) {
	client := spawnClient(t, SeedStore())

	c, err := client.Create(NewPatch().WithName("John").WithStreet("P. Circus"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "John", c.Name)
	assert.Equal(t, "P. Circus", c.Street)

	got, err := client.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestGetOneNotFound(t *testing.T) {
	client := spawnClient(t, SeedStore())

	reply, err := client.PID().Ask(func(r *actor.PID) actor.Message {
		return &GetOne{ReplyTo: r, ContactID: "nonexistent"}
	}, time.Second)
	require.NoError(t, err)

	nf, ok := reply.(*NotFound)
	require.True(t, ok, "got %T", reply)
	assert.Equal(t, ContactID("nonexistent"), nf.ContactID)

	_, err = client.Get("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, actor.IsTimeout(err))

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, ContactID("nonexistent"), nfErr.ContactID)
}

func TestUpdateRemoveMissing(t *testing.T) {
	client := spawnClient(t, SeedStore())

	_, err := client.Update("missing", NewPatch().WithName("x"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.Remove("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := client.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRemoveIsFinal(t *testing.T) {
	client := spawnClient(t, SeedStore())

	removed, err := client.Remove("abc-123")
	require.NoError(t, err)
	assert.Equal(t, Contact{ID: "abc-123", Name: "Henk", Street: "Piet Smitstraat"}, removed)

	_, err = client.Get("abc-123")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.Remove("abc-123")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := client.List()
	require.NoError(t, err)
	assert.Equal(t, []Contact{{ID: "def-456", Name: "Wim", Street: "Groningerstraatweg"}}, all)
}

func TestUpdateMerge(t *testing.T) {
	seed, err := NewStore(Contact{ID: "X", Name: "Henk", Street: "Old"})
	require.NoError(t, err)
	client := spawnClient(t, seed)

	got, err := client.Update("X", NewPatch().WithStreet("New St"))
	require.NoError(t, err)
	assert.Equal(t, Contact{ID: "X", Name: "Henk", Street: "New St"}, got)

	stored, err := client.Get("X")
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestUnrecognizedMessageTimesOut(t *testing.T) {
	client := spawnClient(t, SeedStore())
	const bound = 100 * time.Millisecond

	start := time.Now()
	_, err := client.PID().Ask(func(r *actor.PID) actor.Message {
		return &unknownMessage{ReplyTo: r}
	}, bound)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, actor.IsTimeout(err))
	assert.GreaterOrEqual(t, elapsed, bound*9/10)

	// 回复类消息发给存储同样被忽略
	require.NoError(t, client.PID().Tell(&Success{Contact: Contact{ID: "injected"}}))
	require.NoError(t, client.PID().Tell(&NotFound{ContactID: "abc-123"}))

	all, err := client.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSendOrdering(t *testing.T) {
	client := spawnClient(t, SeedStore())

	require.NoError(t, client.NotifyUpdate("abc-123", NewPatch().WithStreet("A")))
	require.NoError(t, client.NotifyUpdate("abc-123", NewPatch().WithStreet("B")))

	got, err := client.Get("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Street)
}

func TestNotifyWithoutReply(t *testing.T) {
	client := spawnClient(t, SeedStore(), WithIDGenerator(sequentialIDs("n")))

	require.NoError(t, client.NotifyCreate(NewPatch().WithName("Ann")))
	require.NoError(t, client.NotifyRemove("def-456"))

	all, err := client.List()
	require.NoError(t, err)
	assert.Equal(t, []Contact{
		{ID: "abc-123", Name: "Henk", Street: "Piet Smitstraat"},
		{ID: "n-1", Name: "Ann"},
	}, all)
}

func TestCreateRegeneratesCollidingID(t *testing.T) {
	ids := []ContactID{"abc-123", "", "fresh"}
	gen := func() ContactID {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	client := spawnClient(t, SeedStore(), WithIDGenerator(gen))

	c, err := client.Create(NewPatch().WithName("New"))
	require.NoError(t, err)
	assert.Equal(t, ContactID("fresh"), c.ID)

	henk, err := client.Get("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Henk", henk.Name)
}

func TestFailedCreateLeavesStateUntouched(t *testing.T) {
	sys := newTestSystem(t)
	pid, err := Spawn(sys, "", SeedStore(), WithIDGenerator(func() ContactID { return "abc-123" }))
	require.NoError(t, err)
	assert.Equal(t, DefaultActorName, pid.ID)

	client := NewClient(pid, 50*time.Millisecond)

	// 处理函数 panic：没有回复，状态不变
	_, err = client.Create(NewPatch().WithName("Dup"))
	assert.True(t, actor.IsTimeout(err))

	all, err := client.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, SeedContacts(), all)
	assert.Equal(t, int64(1), sys.Stats().Panics)
}

func TestRepliesCarryStorePID(t *testing.T) {
	client := spawnClient(t, SeedStore())

	reply, err := actor.AskAs[*Success](client.PID(), func(r *actor.PID) actor.Message {
		return &GetOne{ReplyTo: r, ContactID: "def-456"}
	}, time.Second)
	require.NoError(t, err)
	require.NotNil(t, reply.From)
	assert.Equal(t, client.PID().ID, reply.From.ID)
}

func TestStoppedStoreRejectsSend(t *testing.T) {
	sys := newTestSystem(t)
	pid, err := Spawn(sys, "contacts", SeedStore())
	require.NoError(t, err)

	require.NoError(t, sys.StopGracefully(pid, time.Second))

	client := NewClient(pid, 50*time.Millisecond)
	assert.ErrorIs(t, client.NotifyCreate(NewPatch()), actor.ErrActorNotFound)

	_, err = client.List()
	assert.ErrorIs(t, err, actor.ErrActorNotFound)
}

func TestBoundedMailbox(t *testing.T) {
	sys := newTestSystem(t)
	pid, err := Spawn(sys, "bounded", SeedStore(), WithMailboxSize(4))
	require.NoError(t, err)

	client := NewClient(pid, time.Second)
	all, err := client.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
