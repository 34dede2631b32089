// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package guard restricts administrative commands to authorized callers.
package guard

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/metaverse-network/tokenswap/codec"
)

var ErrUnauthorized = errors.New("unauthorized")

var _ AuthorizationCheck = (*StaticAuthorizer)(nil)

// AuthorizationCheck decides whether [caller] may run administrative
// commands.
type AuthorizationCheck interface {
	IsAuthorized(ctx context.Context, caller codec.Address) bool
}

// Guard wraps administrative commands with an [AuthorizationCheck].
type Guard struct {
	log   logging.Logger
	check AuthorizationCheck
}

func New(log logging.Logger, check AuthorizationCheck) *Guard {
	return &Guard{log: log, check: check}
}

// Require returns [ErrUnauthorized] if [caller] may not run [command].
func (g *Guard) Require(ctx context.Context, caller codec.Address, command string) error {
	if g.check.IsAuthorized(ctx, caller) {
		return nil
	}
	g.log.Debug("rejected unauthorized command",
		zap.Stringer("caller", caller),
		zap.String("command", command),
	)
	return fmt.Errorf("%w: %s may not %s", ErrUnauthorized, caller, command)
}

// Run invokes [f] only if [caller] is authorized.
func (g *Guard) Run(ctx context.Context, caller codec.Address, command string, f func() error) error {
	if err := g.Require(ctx, caller, command); err != nil {
		return err
	}
	return f()
}

// StaticAuthorizer authorizes a fixed set of administrators.
type StaticAuthorizer struct {
	admins set.Set[codec.Address]
}

func NewStaticAuthorizer(admins ...codec.Address) *StaticAuthorizer {
	return &StaticAuthorizer{admins: set.Of(admins...)}
}

func (s *StaticAuthorizer) IsAuthorized(_ context.Context, caller codec.Address) bool {
	return s.admins.Contains(caller)
}

// Admins returns the administrators in byte order.
func (s *StaticAuthorizer) Admins() []codec.Address {
	admins := maps.Keys(s.admins)
	slices.SortFunc(admins, func(a, b codec.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return admins
}
