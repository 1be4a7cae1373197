package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	client "github.com/redshard/sharded-redis"
)

var (
	addrs    []string
	db       int
	jumpHash bool
)

var rootCmd = &cobra.Command{
	Use:   "redshard",
	Short: "A sharded Redis client",
	Long:  "redshard talks the Redis wire protocol against one or more servers, routing keys to shards client-side.",
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&addrs, "addr", []string{"127.0.0.1:6379"}, "server address, repeat for multiple shards")
	rootCmd.PersistentFlags().IntVar(&db, "db", 0, "logical database index")
	rootCmd.PersistentFlags().BoolVar(&jumpHash, "jump-hash", false, "route keys with jump hashing instead of the modulo hash")
}

func connect() (*client.Client, error) {
	targets := make([]client.ConnectionTarget, 0, len(addrs))
	for _, a := range addrs {
		host, portStr, err := net.SplitHostPort(a)
		if err != nil {
			return nil, fmt.Errorf("bad --addr %q: %w", a, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("bad port in --addr %q: %w", a, err)
		}
		targets = append(targets, client.ConnectionTarget{Address: host, Port: port, DB: db})
	}
	if jumpHash {
		return client.ShardedClientWith(client.JumpHash{}, targets...)
	}
	return client.ShardedClient(targets...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
