package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/redshard/sharded-redis/internal/proto"
)

// ServerRole distinguishes masters from replicas in INFO output.
type ServerRole string

const (
	RoleMaster ServerRole = "master"
	RoleSlave  ServerRole = "slave"
)

// ServerInfo is the parsed INFO reply. Params holds every reported
// parameter verbatim; the typed fields cover the commonly used ones.
type ServerInfo struct {
	Version                  string
	BGSaveInProgress         bool
	ConnectedClients         uint64
	ConnectedSlaves          uint64
	UsedMemory               uint64
	ChangesSinceLastSave     uint64
	LastSaveTime             uint64
	TotalConnectionsReceived uint64
	TotalCommandsProcessed   uint64
	UptimeInSeconds          uint64
	UptimeInDays             uint64
	Role                     ServerRole
	ArchBits                 uint64
	MultiplexingAPI          string
	Params                   map[string]string
}

// Info fetches and parses the server's INFO report. Single server only.
func (c *Client) Info() (*ServerInfo, error) {
	cn, err := c.singleConn()
	if err != nil {
		return nil, err
	}
	payload, err := c.doBulk(cn, proto.NewCommand("INFO"))
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty INFO reply", ErrProtocol)
	}
	return parseInfo(string(payload))
}

func parseInfo(payload string) (*ServerInfo, error) {
	out := &ServerInfo{Params: make(map[string]string)}
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimRight(line, "\r")
		// Newer servers group parameters under comment headers.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%w: unexpected INFO line %q", ErrProtocol, line)
		}
		out.Params[key] = val

		var err error
		switch key {
		case "redis_version":
			out.Version = val
		case "bgsave_in_progress":
			out.BGSaveInProgress = val == "1"
		case "connected_clients":
			out.ConnectedClients, err = strconv.ParseUint(val, 10, 64)
		case "connected_slaves":
			out.ConnectedSlaves, err = strconv.ParseUint(val, 10, 64)
		case "used_memory":
			out.UsedMemory, err = strconv.ParseUint(val, 10, 64)
		case "changes_since_last_save":
			out.ChangesSinceLastSave, err = strconv.ParseUint(val, 10, 64)
		case "last_save_time":
			out.LastSaveTime, err = strconv.ParseUint(val, 10, 64)
		case "total_connections_received":
			out.TotalConnectionsReceived, err = strconv.ParseUint(val, 10, 64)
		case "total_commands_processed":
			out.TotalCommandsProcessed, err = strconv.ParseUint(val, 10, 64)
		case "uptime_in_seconds":
			out.UptimeInSeconds, err = strconv.ParseUint(val, 10, 64)
		case "uptime_in_days":
			out.UptimeInDays, err = strconv.ParseUint(val, 10, 64)
		case "role":
			if val == string(RoleMaster) {
				out.Role = RoleMaster
			} else {
				out.Role = RoleSlave
			}
		case "arch_bits":
			out.ArchBits, err = strconv.ParseUint(val, 10, 64)
		case "multiplexing_api":
			out.MultiplexingAPI = val
		}
		if err != nil {
			return nil, fmt.Errorf("%w: INFO parameter %s=%q is not numeric", ErrValue, key, val)
		}
	}
	return out, nil
}
