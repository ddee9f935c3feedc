package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-statebridge"
	"github.com/goliatone/go-statebridge/adapters/memory"
)

type task struct {
	ID    string
	Title string
}

func stateTree(t *testing.T, store *memory.Store) map[string]any {
	t.Helper()
	tree, ok := store.State().(map[string]any)
	assert.True(t, ok)
	return tree
}

func TestStoreMaterializesObjectActions(t *testing.T) {
	store := memory.NewStore(nil)

	store.Dispatch(statebridge.ObjectSubscribed{Kind: "tasks", Subscribed: true})
	store.Dispatch(statebridge.ObjectAdded{Kind: "tasks", Record: task{ID: "t1", Title: "write"}})
	store.Dispatch(statebridge.ObjectChanged{Kind: "tasks", Record: task{ID: "t1", Title: "rewrite"}})
	store.Dispatch(statebridge.ObjectAdded{Kind: "tasks", Record: task{ID: "t2", Title: "ship"}})
	store.Dispatch(statebridge.ObjectRemoved{Kind: "tasks", Record: task{ID: "t2", Title: "ship"}})

	tree := stateTree(t, store)

	subs := tree["subscriptions"].(map[string]bool)
	assert.True(t, subs["tasks"])

	collections := tree["collections"].(map[string]map[string]any)
	assert.Equal(t, map[string]any{
		"t1": task{ID: "t1", Title: "rewrite"},
	}, collections["tasks"])
}

func TestStoreRecordsSubscriptionErrors(t *testing.T) {
	store := memory.NewStore(nil)
	err := statebridge.NewNoDataError("/tasks")

	store.Dispatch(statebridge.ObjectErrored{Kind: "tasks", Err: err})

	tree := stateTree(t, store)
	errs := tree["errors"].(map[string]error)
	assert.Equal(t, err, errs["tasks"])
}

func TestStoreMaterializesAuthActions(t *testing.T) {
	store := memory.NewStore(nil)

	store.Dispatch(statebridge.UserAuthEvent{Event: statebridge.SignedUp})
	store.Dispatch(statebridge.UserLoggedIn{UserID: "u1"})

	tree := stateTree(t, store)
	auth := tree["auth"].(map[string]any)
	assert.Equal(t, "u1", auth["userID"])
	assert.Equal(t, statebridge.SignedUp, auth["lastEvent"])

	store.Dispatch(statebridge.UserLoggedOut{})
	tree = stateTree(t, store)
	assert.Empty(t, tree["auth"].(map[string]any))
}

func TestStoreKeepsLastAuthError(t *testing.T) {
	store := memory.NewStore(nil)

	store.Dispatch(statebridge.UserAuthFailed{Err: statebridge.ErrCurrentUserNotFound})

	tree := stateTree(t, store)
	auth := tree["auth"].(map[string]any)
	assert.Equal(t, statebridge.ErrCurrentUserNotFound, auth["lastError"])

	// a successful login clears the error
	store.Dispatch(statebridge.UserLoggedIn{UserID: "u1"})
	tree = stateTree(t, store)
	auth = tree["auth"].(map[string]any)
	assert.Equal(t, "u1", auth["userID"])
	assert.NotContains(t, auth, "lastError")
}

func TestStoreIgnoresRecordsWithoutID(t *testing.T) {
	store := memory.NewStore(nil)

	store.Dispatch(statebridge.ObjectAdded{Kind: "tasks", Record: struct{ Title string }{Title: "no id"}})

	tree := stateTree(t, store)
	assert.NotContains(t, tree, "collections")
}

func TestStoreCustomReducer(t *testing.T) {
	var seen []string
	store := memory.NewStore(func(state map[string]any, action statebridge.Action) map[string]any {
		seen = append(seen, action.Type())
		return state
	})

	store.Dispatch(statebridge.UserLoggedOut{})
	store.Dispatch(statebridge.ObjectSubscribed{Kind: "tasks", Subscribed: true})

	assert.Equal(t, []string{"user.logged_out", "object.subscribed"}, seen)
}

func TestDispatchProducerAppliesImmediateAction(t *testing.T) {
	store := memory.NewStore(nil)

	store.DispatchProducer(func(state statebridge.State, dispatch statebridge.Dispatch) statebridge.Action {
		dispatch(statebridge.UserLoggedIn{UserID: "u1"})
		return statebridge.UserAuthEvent{Event: statebridge.SignedUp}
	})

	tree := stateTree(t, store)
	auth := tree["auth"].(map[string]any)
	assert.Equal(t, "u1", auth["userID"])
	assert.Equal(t, statebridge.SignedUp, auth["lastEvent"])
}

// End-to-end: realtime collection -> subscription bridge -> store.
func TestBridgeRealtimeStoreIntegration(t *testing.T) {
	rt := memory.NewRealtime("/tasks")
	store := memory.NewStore(nil)
	bridge := statebridge.NewBridge(rt, "tasks", statebridge.DecoderFor[task]())

	store.DispatchProducer(bridge.Activate(statebridge.SubscriptionState{}))

	rt.Put("t1", map[string]any{"title": "write"})
	rt.Put("t1", map[string]any{"title": "rewrite"})
	rt.Put("t2", map[string]any{"title": "ship"})
	rt.Delete("t2")
	rt.Emit(statebridge.ChildAdded, "t3", nil, false)

	tree := stateTree(t, store)

	subs := tree["subscriptions"].(map[string]bool)
	assert.True(t, subs["tasks"])

	collections := tree["collections"].(map[string]map[string]any)
	assert.Equal(t, map[string]any{
		"t1": task{ID: "t1", Title: "rewrite"},
	}, collections["tasks"])

	errs := tree["errors"].(map[string]error)
	assert.True(t, statebridge.IsNoDataError(errs["tasks"]))
	assert.Equal(t, "/tasks", statebridge.ErrorPath(errs["tasks"]))

	// second activation with the updated guard is a no-op
	store.DispatchProducer(bridge.Activate(statebridge.SubscriptionState{Subscribed: true}))
	assert.Equal(t, 1, rt.ListenerCount(statebridge.ChildAdded))

	// teardown detaches and resets the guard
	store.DispatchProducer(bridge.Deactivate())
	assert.Equal(t, 0, rt.ListenerCount(statebridge.ChildAdded))

	tree = stateTree(t, store)
	subs = tree["subscriptions"].(map[string]bool)
	assert.False(t, subs["tasks"])
}
