package events

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Field offsets within the copied indications (header included).
const (
	connectStatusOff    = HeaderSize
	connectMACOff       = HeaderSize + 4
	connectChannelOff   = HeaderSize + 10
	connectBeaconOff    = HeaderSize + 12
	connectDTIMOff      = HeaderSize + 13
	connectMaxRateOff   = HeaderSize + 14
	disconnectMACOff    = HeaderSize
	disconnectReasonOff = HeaderSize + 6
	startupStatusOff    = HeaderSize
	startupHWIDOff      = HeaderSize + 4
	startupMACOff       = HeaderSize + 30
	startupFWBuildOff   = HeaderSize + 48
)

// Details decodes the well-known fields of p for display. Unrecognized and
// IP payloads carry no decoded fields.
func Details(p Payload) map[string]any {
	switch v := p.(type) {
	case Startup:
		b := v.Indication[:]
		return map[string]any{
			"status":      binary.LittleEndian.Uint32(b[startupStatusOff:]),
			"hardware_id": binary.LittleEndian.Uint16(b[startupHWIDOff:]),
			"mac":         mac(b[startupMACOff:]),
			"firmware": fmt.Sprintf("%d.%d.%d",
				b[startupFWBuildOff+2], b[startupFWBuildOff+1], b[startupFWBuildOff]),
		}
	case Connect:
		b := v.Indication[:]
		return map[string]any{
			"status":          binary.LittleEndian.Uint32(b[connectStatusOff:]),
			"mac":             mac(b[connectMACOff:]),
			"channel":         binary.LittleEndian.Uint16(b[connectChannelOff:]),
			"beacon_interval": b[connectBeaconOff],
			"dtim_period":     b[connectDTIMOff],
			"max_phy_rate":    binary.LittleEndian.Uint16(b[connectMaxRateOff:]),
		}
	case Disconnect:
		b := v.Indication[:]
		return map[string]any{
			"mac":    mac(b[disconnectMACOff:]),
			"reason": binary.LittleEndian.Uint16(b[disconnectReasonOff:]),
		}
	default:
		return nil
	}
}

func mac(b []byte) string {
	return net.HardwareAddr(b[:6]).String()
}
