// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vault"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) send(ctx context.Context, method string, args interface{}, reply interface{}) error {
	if args == nil {
		args = struct{}{}
	}
	return cli.requester.SendRequest(ctx, Name+"."+method, args, reply)
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.send(ctx, "ping", nil, resp)
	return resp.Success, err
}

func (cli *JSONRPCClient) LastHeight(ctx context.Context) (uint64, error) {
	resp := new(LastHeightReply)
	err := cli.send(ctx, "lastHeight", nil, resp)
	return resp.Height, err
}

// SubmitTx executes [tx]. A rejected transaction is returned as
// [ErrTxRejected] together with its reply.
func (cli *JSONRPCClient) SubmitTx(ctx context.Context, tx *chain.Transaction) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	if err := cli.send(ctx, "submitTx", &SubmitTxArgs{Tx: tx.Bytes()}, resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("%w: %s (%s)", ErrTxRejected, resp.Error, resp.Category)
	}
	return resp, nil
}

func (cli *JSONRPCClient) CurrentRate(ctx context.Context) (*types.ExchangeRate, error) {
	resp := new(RateReply)
	err := cli.send(ctx, "currentRate", nil, resp)
	return resp.Rate, err
}

func (cli *JSONRPCClient) RateHistory(ctx context.Context) ([]*types.ExchangeRate, error) {
	resp := new(RateHistoryReply)
	err := cli.send(ctx, "rateHistory", nil, resp)
	return resp.Rates, err
}

func (cli *JSONRPCClient) ReserveTotals(ctx context.Context) (*types.Reserve, error) {
	resp := new(ReserveReply)
	err := cli.send(ctx, "reserveTotals", nil, resp)
	return resp.Reserve, err
}

func (cli *JSONRPCClient) LockEntries(ctx context.Context, addr codec.Address) ([]*types.LockEntry, error) {
	resp := new(LockEntriesReply)
	err := cli.send(ctx, "lockEntries", &AccountArgs{Address: codec.MustAddressBech32(consts.HRP, addr)}, resp)
	return resp.Locks, err
}

func (cli *JSONRPCClient) Claimable(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(ClaimableReply)
	err := cli.send(ctx, "claimable", &AccountArgs{Address: codec.MustAddressBech32(consts.HRP, addr)}, resp)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Paused(ctx context.Context) (bool, error) {
	resp := new(PausedReply)
	err := cli.send(ctx, "paused", nil, resp)
	return resp.Paused, err
}

func (cli *JSONRPCClient) VestingPolicy(ctx context.Context) (*types.VestingPolicy, error) {
	resp := new(VestingPolicyReply)
	err := cli.send(ctx, "vestingPolicy", nil, resp)
	return resp.Policy, err
}

func (cli *JSONRPCClient) Audit(ctx context.Context) (*vault.Report, error) {
	resp := new(AuditReply)
	err := cli.send(ctx, "audit", nil, resp)
	return resp.Report, err
}

func (cli *JSONRPCClient) RecentEvents(ctx context.Context) ([]*chain.Notification, error) {
	resp := new(RecentEventsReply)
	if err := cli.send(ctx, "recentEvents", nil, resp); err != nil {
		return nil, err
	}
	parser, err := swap.NewEventParser()
	if err != nil {
		return nil, err
	}
	notifications := make([]*chain.Notification, 0, len(resp.Events))
	for _, e := range resp.Events {
		event, err := swap.ParseEvent(parser, e.Event)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &chain.Notification{
			Height: e.Height,
			TxID:   e.TxID,
			Event:  event,
		})
	}
	return notifications, nil
}
