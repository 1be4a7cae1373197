package client

import (
	"fmt"
	"strconv"
)

// The Shared* types make a remote key handleable like a local variable:
// a thin struct holding the client and the key, with explicit methods for
// each operation.

// SharedValue carries the key-level operations common to all shared types.
type SharedValue struct {
	c   *Client
	key string
}

func (v *SharedValue) Key() string { return v.key }

func (v *SharedValue) Exists() (bool, error) { return v.c.Exists(v.key) }

func (v *SharedValue) Del() error { return v.c.Del(v.key) }

// Rename renames the underlying key; on success the proxy follows the new
// name.
func (v *SharedValue) Rename(newName string) error {
	if err := v.c.Rename(v.key, newName); err != nil {
		return err
	}
	v.key = newName
	return nil
}

// RenameNX renames unless newName exists; the proxy follows the new name
// only when the rename happened.
func (v *SharedValue) RenameNX(newName string) (bool, error) {
	renamed, err := v.c.RenameNX(v.key, newName)
	if err != nil {
		return false, err
	}
	if renamed {
		v.key = newName
	}
	return renamed, nil
}

func (v *SharedValue) Expire(seconds int64) error { return v.c.Expire(v.key, seconds) }

func (v *SharedValue) TTL() (int64, error) { return v.c.TTL(v.key) }

func (v *SharedValue) Move(db int64) error { return v.c.Move(v.key, db) }

func (v *SharedValue) Type() (KeyType, error) { return v.c.Type(v.key) }

// SharedString is a remote string value.
type SharedString struct {
	SharedValue
}

func NewSharedString(c *Client, key string) *SharedString {
	return &SharedString{SharedValue{c: c, key: key}}
}

// NewSharedStringDefault additionally stores defaultValue unless the key
// already exists.
func NewSharedStringDefault(c *Client, key, defaultValue string) (*SharedString, error) {
	s := NewSharedString(c, key)
	if _, err := s.SetNX(defaultValue); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SharedString) Get() ([]byte, error) { return s.c.Get(s.key) }

func (s *SharedString) Set(value string) error { return s.c.Set(s.key, value) }

func (s *SharedString) GetSet(value string) ([]byte, error) { return s.c.GetSet(s.key, value) }

func (s *SharedString) SetNX(value string) (bool, error) { return s.c.SetNX(s.key, value) }

func (s *SharedString) SetEx(value string, seconds int64) error {
	return s.c.SetEx(s.key, value, seconds)
}

func (s *SharedString) Append(value string) (int64, error) { return s.c.Append(s.key, value) }

func (s *SharedString) Substr(start, end int64) ([]byte, error) {
	return s.c.Substr(s.key, start, end)
}

// SharedInt is a remote integer counter.
type SharedInt struct {
	SharedValue
}

func NewSharedInt(c *Client, key string) *SharedInt {
	return &SharedInt{SharedValue{c: c, key: key}}
}

// NewSharedIntDefault additionally stores defaultValue unless the key
// already exists.
func NewSharedIntDefault(c *Client, key string, defaultValue int64) (*SharedInt, error) {
	n := NewSharedInt(c, key)
	if _, err := n.SetNX(defaultValue); err != nil {
		return nil, err
	}
	return n, nil
}

// Get returns the current value. A missing or non-numeric value is
// ErrValue.
func (n *SharedInt) Get() (int64, error) {
	b, err := n.c.Get(n.key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: value is not of integer type", ErrValue)
	}
	return v, nil
}

func (n *SharedInt) Set(value int64) error {
	return n.c.Set(n.key, strconv.FormatInt(value, 10))
}

func (n *SharedInt) SetNX(value int64) (bool, error) {
	return n.c.SetNX(n.key, strconv.FormatInt(value, 10))
}

func (n *SharedInt) SetEx(value, seconds int64) error {
	return n.c.SetEx(n.key, strconv.FormatInt(value, 10), seconds)
}

func (n *SharedInt) Incr() (int64, error) { return n.c.Incr(n.key) }

func (n *SharedInt) Decr() (int64, error) { return n.c.Decr(n.key) }

func (n *SharedInt) IncrBy(by int64) (int64, error) { return n.c.IncrBy(n.key, by) }

func (n *SharedInt) DecrBy(by int64) (int64, error) { return n.c.DecrBy(n.key, by) }

// SharedList is a remote list.
type SharedList struct {
	SharedValue
}

func NewSharedList(c *Client, key string) *SharedList {
	return &SharedList{SharedValue{c: c, key: key}}
}

func (l *SharedList) PushBack(value string) error {
	_, err := l.c.RPush(l.key, value)
	return err
}

func (l *SharedList) PushFront(value string) error {
	_, err := l.c.LPush(l.key, value)
	return err
}

func (l *SharedList) PopBack() ([]byte, error) { return l.c.RPop(l.key) }

func (l *SharedList) PopFront() ([]byte, error) { return l.c.LPop(l.key) }

func (l *SharedList) BlockingPopBack(timeout int64) ([]byte, error) {
	_, value, err := l.c.BRPop(timeout, l.key)
	return value, err
}

func (l *SharedList) BlockingPopFront(timeout int64) ([]byte, error) {
	_, value, err := l.c.BLPop(timeout, l.key)
	return value, err
}

func (l *SharedList) Len() (int64, error) { return l.c.LLen(l.key) }

func (l *SharedList) Range(start, end int64) ([][]byte, error) {
	return l.c.LRange(l.key, start, end)
}

func (l *SharedList) Values() ([][]byte, error) { return l.Range(0, -1) }

func (l *SharedList) Trim(start, end int64) error { return l.c.LTrim(l.key, start, end) }

func (l *SharedList) Index(i int64) ([]byte, error) { return l.c.LIndex(l.key, i) }

func (l *SharedList) Set(i int64, value string) error { return l.c.LSet(l.key, i, value) }

// SharedSet is a remote unordered set.
type SharedSet struct {
	SharedValue
}

func NewSharedSet(c *Client, key string) *SharedSet {
	return &SharedSet{SharedValue{c: c, key: key}}
}

func (s *SharedSet) Insert(member string) error { return s.c.SAdd(s.key, member) }

func (s *SharedSet) Erase(member string) error { return s.c.SRem(s.key, member) }

func (s *SharedSet) Clear() error { return s.Del() }

func (s *SharedSet) Count() (int64, error) { return s.c.SCard(s.key) }

func (s *SharedSet) PopRandom() ([]byte, error) { return s.c.SPop(s.key) }

func (s *SharedSet) GetRandom() ([]byte, error) { return s.c.SRandMember(s.key) }

func (s *SharedSet) Contains(member string) (bool, error) {
	return s.c.SIsMember(s.key, member)
}

func (s *SharedSet) Members() ([][]byte, error) { return s.c.SMembers(s.key) }
