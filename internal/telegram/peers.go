package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Marked dialog ids follow the Bot API convention: users keep their id,
// basic groups are negated and channels are offset below -1000000000000.
const channelIDOffset int64 = 1000000000000

type peerKind int

const (
	peerSelf peerKind = iota
	peerUsername
	peerUser
	peerChat
	peerChannel
)

type peerRef struct {
	kind     peerKind
	id       int64
	username string
}

var errEmptyPeer = errors.New("empty peer id")

func markUser(id int64) string    { return strconv.FormatInt(id, 10) }
func markChat(id int64) string    { return strconv.FormatInt(-id, 10) }
func markChannel(id int64) string { return strconv.FormatInt(-(channelIDOffset + id), 10) }

// parsePeer decodes a marked id, "me"/"self" or a public username with or
// without the leading "@".
func parsePeer(s string) (peerRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return peerRef{}, errEmptyPeer
	}

	switch strings.ToLower(s) {
	case "me", "self":
		return peerRef{kind: peerSelf}, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return peerRef{kind: peerUsername, username: strings.TrimPrefix(s, "@")}, nil
	}

	switch {
	case n > 0:
		return peerRef{kind: peerUser, id: n}, nil
	case n < -channelIDOffset:
		return peerRef{kind: peerChannel, id: -n - channelIDOffset}, nil
	case n < 0:
		return peerRef{kind: peerChat, id: -n}, nil
	}
	return peerRef{}, errors.New("invalid peer id 0")
}
