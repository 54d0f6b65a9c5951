// Package events provides types and interfaces for publishing study events.
//
// Services emit events after their transaction has committed, without knowing
// which handlers consume them. Handlers are registered on an EventEmitter at
// startup.
//
// The primary components are:
// - Event: an envelope with a type and a JSON payload
// - EventHandler: interface for components that consume events
// - EventEmitter: interface for components that publish events
package events
