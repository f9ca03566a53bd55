package events

import (
	"fmt"
	"strings"
	"time"
)

// Base identifies the driver subsystem a notification came from.
type Base uint8

// Notification bases.
const (
	BaseUnknown Base = iota
	BaseWiFi
	BaseIP
)

// String returns the topic segment for b.
func (b Base) String() string {
	switch b {
	case BaseWiFi:
		return "wifi"
	case BaseIP:
		return "ip"
	default:
		return "unknown"
	}
}

// ParseBase is the inverse of Base.String. Unknown names give BaseUnknown
// and an error.
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(s) {
	case "wifi":
		return BaseWiFi, nil
	case "ip":
		return BaseIP, nil
	default:
		return BaseUnknown, fmt.Errorf("unknown event base %q", s)
	}
}

// Wi-Fi indication IDs.
const (
	StartupIndID    uint8 = 0xE1
	ConnectIndID    uint8 = 0xC3
	DisconnectIndID uint8 = 0xC5

	// Known to the driver but not decoded here.
	ReceivedIndID  uint8 = 0xC2
	GenericIndID   uint8 = 0xE3
	ExceptionIndID uint8 = 0xE0
	ErrorIndID     uint8 = 0xE4
)

// IP event IDs.
const (
	IPEventGotIPv4 uint8 = 0
	IPEventLostIP  uint8 = 1
	IPEventGotIPv6 uint8 = 3
)

// Payload sizes, header included.
const (
	StartupIndicationSize    = 198
	ConnectIndicationSize    = 20
	DisconnectIndicationSize = 12
	GenericMessageSize       = HeaderSize
)

// Vendor payloads, copied byte for byte from the frame.
type (
	StartupIndication    [StartupIndicationSize]byte
	ConnectIndication    [ConnectIndicationSize]byte
	DisconnectIndication [DisconnectIndicationSize]byte
	GenericMessage       [GenericMessageSize]byte
)

// Type is the event category.
type Type uint16

// Event categories.
const (
	TypeWiFiSystemEvent Type = 0x8001
)

// String returns the name of t.
func (t Type) String() string {
	if t == TypeWiFiSystemEvent {
		return "wifi_system_event"
	}
	return fmt.Sprintf("type_%#04x", uint16(t))
}

// Event is the uniform application event. It is a plain value and is
// copied into the queue.
type Event struct {
	Type      Type
	Sequence  uint64
	Timestamp time.Time
	WiFi      WiFiSystemEvent
}

// WiFiSystemEvent is the body of a TypeWiFiSystemEvent event.
type WiFiSystemEvent struct {
	Base    Base
	Payload Payload
}

// Payload is one of Startup, Connect, Disconnect, GotIPv4, GotIPv6, LostIP
// or Unrecognized.
type Payload interface {
	// Kind names the variant, for topics and logs.
	Kind() string
	isPayload()
}

// Payload variants.
type (
	Startup    struct{ Indication StartupIndication }
	Connect    struct{ Indication ConnectIndication }
	Disconnect struct{ Indication DisconnectIndication }
	GotIPv4    struct{ Message GenericMessage }
	GotIPv6    struct{ Message GenericMessage }
	LostIP     struct{ Message GenericMessage }

	// Unrecognized marks a notification whose kind is not decoded.
	Unrecognized struct{}
)

func (Startup) Kind() string      { return "startup" }
func (Connect) Kind() string      { return "connect" }
func (Disconnect) Kind() string   { return "disconnect" }
func (GotIPv4) Kind() string      { return "got_ipv4" }
func (GotIPv6) Kind() string      { return "got_ipv6" }
func (LostIP) Kind() string       { return "lost_ip" }
func (Unrecognized) Kind() string { return "unrecognized" }

func (Startup) isPayload()      {}
func (Connect) isPayload()      {}
func (Disconnect) isPayload()   {}
func (GotIPv4) isPayload()      {}
func (GotIPv6) isPayload()      {}
func (LostIP) isPayload()       {}
func (Unrecognized) isPayload() {}

// Bytes returns the raw vendor bytes held by p. Unrecognized has none.
func Bytes(p Payload) []byte {
	switch v := p.(type) {
	case Startup:
		return v.Indication[:]
	case Connect:
		return v.Indication[:]
	case Disconnect:
		return v.Indication[:]
	case GotIPv4:
		return v.Message[:]
	case GotIPv6:
		return v.Message[:]
	case LostIP:
		return v.Message[:]
	default:
		return nil
	}
}
