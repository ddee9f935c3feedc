// Package statebridge converts realtime backend change notifications into
// typed state-mutation actions for a single-source-of-truth store, and
// converts outgoing authentication requests into backend calls whose async
// outcomes are translated into actions the same way.
//
// Subscription bridge:
//   - Bridge registers child-added/changed/removed listeners on a Query
//     exactly once, guarded by the SubscriptionState flag held in the store.
//     The guard dispatch happens before registration so no callback can race
//     the flag update.
//   - Each event runs the decode pipeline (exists check, object-shape check,
//     id injection, record construction) and dispatches ObjectAdded,
//     ObjectChanged, ObjectRemoved or a Kind-scoped ObjectErrored. Decode
//     failures are per-event; the subscription stays live.
//
// Auth bridge:
//   - AuthBridge exposes log in, sign up, change password, change email,
//     reset password, and log out over an injected AuthClient capability.
//     Every outcome, success or failure, terminates in exactly one
//     dispatched action; producers never raise.
//
// Both bridges hand back ActionProducer values: deferred computations
// invoked with the current state and a dispatch capability, so application
// code decides when effects run. Backends and stores are injected, never
// global, which keeps the bridges testable against scripted fakes (see
// adapters/memory).
package statebridge
