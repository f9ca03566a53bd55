package events

// Translate maps a driver notification to an Event. It never fails: a
// notification it cannot decode, including one without a complete header,
// yields an Unrecognized payload.
func Translate(base Base, msg Message) Event {
	ev := Event{
		Type: TypeWiFiSystemEvent,
		WiFi: WiFiSystemEvent{
			Base:    base,
			Payload: Unrecognized{},
		},
	}

	if !msg.HasHeader() {
		return ev
	}

	raw := msg.Bytes()

	switch base {
	case BaseWiFi:
		switch msg.Header.ID {
		case StartupIndID:
			var p Startup
			copy(p.Indication[:], raw)
			ev.WiFi.Payload = p
		case ConnectIndID:
			var p Connect
			copy(p.Indication[:], raw)
			ev.WiFi.Payload = p
		case DisconnectIndID:
			var p Disconnect
			copy(p.Indication[:], raw)
			ev.WiFi.Payload = p
		}

	case BaseIP:
		var m GenericMessage
		copy(m[:], raw)
		switch msg.Header.ID {
		case IPEventGotIPv4:
			ev.WiFi.Payload = GotIPv4{Message: m}
		case IPEventGotIPv6:
			ev.WiFi.Payload = GotIPv6{Message: m}
		case IPEventLostIP:
			ev.WiFi.Payload = LostIP{Message: m}
		}
	}

	return ev
}
