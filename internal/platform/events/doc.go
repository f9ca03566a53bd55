// Package events translates vendor Wi-Fi and IP driver notifications into
// the uniform Event type posted on the application event queue.
//
// Frames arrive from the driver as a 4-byte little-endian header followed
// by a body. ParseMessage decodes them; Translate maps a (Base, Message)
// pair to an Event; Translator stamps and posts it:
//
//	msg, err := events.ParseMessage(raw)
//	if err != nil {
//	    return err
//	}
//	translator.Handle(events.BaseWiFi, msg)
//
// Every notification yields exactly one posted Event. Kinds this layer does
// not decode carry the Unrecognized payload so consumers still see them.
package events
