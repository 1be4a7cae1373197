package client

import (
	"hash/fnv"

	"github.com/dgryski/go-jump"
)

func keyHash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// ModHash is the default strategy: FNV-1a over the key bytes, reduced
// modulo the shard count.
type ModHash struct{}

func (ModHash) Index(key string, targets []ConnectionTarget) int {
	return int(keyHash(key) % uint64(len(targets)))
}

// JumpHash uses jump consistent hashing. Compared with ModHash it moves
// far fewer keys when the target list changes length between deployments;
// within one client's lifetime both are equally deterministic.
type JumpHash struct{}

func (JumpHash) Index(key string, targets []ConnectionTarget) int {
	return int(jump.Hash(keyHash(key), len(targets)))
}
