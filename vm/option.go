// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"time"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/event"
)

type Option func(*VM)

// WithSubscriptions delivers every committed event to [subs] in addition
// to the RecentEvents backlog.
func WithSubscriptions(subs ...event.Subscription[*chain.Notification]) Option {
	return func(vm *VM) {
		vm.subs = append(vm.subs, subs...)
	}
}

// WithTime overrides the source of block timestamps.
func WithTime(now func() time.Time) Option {
	return func(vm *VM) {
		vm.now = now
	}
}
