/*
Package events defines the durable event taxonomy and binary payload
encoding used by the repository façade's observer and the replay path.

Every validated mutation the façade applies produces one Encode'd blob,
handed to pkg/pipeline for durable writing via pkg/persist. The same Type
ordinals and Payload field order are used on replay to reconstruct the call
that produced the frame.

	blob := events.Encode(events.AddNewUser, ctx,
		events.NewPayload(64).ID(newID).String(auth).String(name).Build())

Broker is a separate, non-durable fan-out for components that want to react
to events live (metrics, the search feed outbox) without reading back the
event log.
*/
package events
