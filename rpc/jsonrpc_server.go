// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vault"
)

// VM is what the server needs from the node.
type VM interface {
	Logger() logging.Logger
	Tracer() trace.Tracer

	// State returns a view of committed state.
	State() state.Immutable
	Executor() *swap.Executor
	ActionParser() *chain.ActionParser

	LastHeight(ctx context.Context) (uint64, error)
	// Submit executes [tx] in its own block and returns the height it was
	// included at.
	Submit(ctx context.Context, tx *chain.Transaction) (uint64, *chain.Result, error)
	RecentEvents() []*chain.Notification
}

type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type LastHeightReply struct {
	Height uint64 `json:"height"`
}

func (j *JSONRPCServer) LastHeight(req *http.Request, _ *struct{}, reply *LastHeightReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.LastHeight")
	defer span.End()

	height, err := j.vm.LastHeight(ctx)
	if err != nil {
		return err
	}
	reply.Height = height
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID     ids.ID `json:"txId"`
	Height   uint64 `json:"height"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Category string `json:"category,omitempty"`
	Output   []byte `json:"output,omitempty"`
}

func (j *JSONRPCServer) SubmitTx(
	req *http.Request,
	args *SubmitTxArgs,
	reply *SubmitTxReply,
) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, err := chain.ParseTx(args.Tx, j.vm.ActionParser())
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal on public service", err)
	}
	height, result, err := j.vm.Submit(ctx, tx)
	if err != nil {
		j.vm.Logger().Warn("failed to submit tx",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return err
	}
	reply.TxID = result.TxID
	reply.Height = height
	reply.Success = result.Success
	reply.Error = result.Error
	reply.Category = result.Category
	reply.Output = result.Output
	return nil
}

type RateReply struct {
	Rate *types.ExchangeRate `json:"rate"`
}

func (j *JSONRPCServer) CurrentRate(req *http.Request, _ *struct{}, reply *RateReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.CurrentRate")
	defer span.End()

	rate, err := j.vm.Executor().CurrentRate(ctx, j.vm.State())
	if err != nil {
		return err
	}
	reply.Rate = rate
	return nil
}

type RateHistoryReply struct {
	Rates []*types.ExchangeRate `json:"rates"`
}

func (j *JSONRPCServer) RateHistory(req *http.Request, _ *struct{}, reply *RateHistoryReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.RateHistory")
	defer span.End()

	rates, err := j.vm.Executor().RateHistory(ctx, j.vm.State())
	if err != nil {
		return err
	}
	reply.Rates = rates
	return nil
}

type ReserveReply struct {
	Reserve *types.Reserve `json:"reserve"`
}

func (j *JSONRPCServer) ReserveTotals(req *http.Request, _ *struct{}, reply *ReserveReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.ReserveTotals")
	defer span.End()

	reserve, err := j.vm.Executor().ReserveTotals(ctx, j.vm.State())
	if err != nil {
		return err
	}
	reply.Reserve = reserve
	return nil
}

type AccountArgs struct {
	Address string `json:"address"`
}

func (a *AccountArgs) parse() (codec.Address, error) {
	if len(a.Address) == 0 {
		return codec.EmptyAddress, fmt.Errorf("%w: address", ErrMissingArgs)
	}
	return codec.ParseAddress(consts.HRP, a.Address)
}

type LockEntriesReply struct {
	Locks []*types.LockEntry `json:"locks"`
}

func (j *JSONRPCServer) LockEntries(req *http.Request, args *AccountArgs, reply *LockEntriesReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.LockEntries")
	defer span.End()

	addr, err := args.parse()
	if err != nil {
		return err
	}
	locks, err := j.vm.Executor().LockEntries(ctx, j.vm.State(), addr)
	if err != nil {
		return err
	}
	reply.Locks = locks
	return nil
}

type ClaimableReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Claimable(req *http.Request, args *AccountArgs, reply *ClaimableReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Claimable")
	defer span.End()

	addr, err := args.parse()
	if err != nil {
		return err
	}
	amount, err := j.vm.Executor().Claimable(ctx, j.vm.State(), addr)
	if err != nil {
		return err
	}
	reply.Amount = amount
	return nil
}

type PausedReply struct {
	Paused bool `json:"paused"`
}

func (j *JSONRPCServer) Paused(req *http.Request, _ *struct{}, reply *PausedReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Paused")
	defer span.End()

	paused, err := j.vm.Executor().Paused(ctx, j.vm.State())
	if err != nil {
		return err
	}
	reply.Paused = paused
	return nil
}

type VestingPolicyReply struct {
	Policy *types.VestingPolicy `json:"policy"`
}

func (j *JSONRPCServer) VestingPolicy(req *http.Request, _ *struct{}, reply *VestingPolicyReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.VestingPolicy")
	defer span.End()

	policy, err := j.vm.Executor().VestingPolicy(ctx, j.vm.State())
	if err != nil {
		return err
	}
	reply.Policy = policy
	return nil
}

type AuditReply struct {
	Report *vault.Report `json:"report"`
}

func (j *JSONRPCServer) Audit(req *http.Request, _ *struct{}, reply *AuditReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Audit")
	defer span.End()

	report, err := vault.Audit(ctx, j.vm.State())
	if err != nil {
		return err
	}
	reply.Report = report
	return nil
}

// EncodedNotification carries an event in its binary form so that clients
// can decode it with [swap.NewEventParser].
type EncodedNotification struct {
	Height uint64 `json:"height"`
	TxID   ids.ID `json:"txId"`
	Event  []byte `json:"event"`
}

type RecentEventsReply struct {
	Events []*EncodedNotification `json:"events"`
}

func (j *JSONRPCServer) RecentEvents(req *http.Request, _ *struct{}, reply *RecentEventsReply) error {
	_, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.RecentEvents")
	defer span.End()

	notifications := j.vm.RecentEvents()
	reply.Events = make([]*EncodedNotification, 0, len(notifications))
	for _, n := range notifications {
		b, err := swap.MarshalEvent(n.Event)
		if err != nil {
			return err
		}
		reply.Events = append(reply.Events, &EncodedNotification{
			Height: n.Height,
			TxID:   n.TxID,
			Event:  b,
		})
	}
	return nil
}
