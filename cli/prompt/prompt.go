// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/utils"
)

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInvalidChoice = errors.New("invalid choice")
)

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.ParseAddress(consts.HRP, strings.TrimSpace(input))
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddress(consts.HRP, strings.TrimSpace(recipient))
}

func parseUint64(input string, allowZero bool) (uint64, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	amount, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, err
	}
	if amount == 0 && !allowZero {
		return 0, fmt.Errorf("%d must be > 0", amount)
	}
	return amount, nil
}

func Uint64(label string, allowZero bool) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parseUint64(input, allowZero)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return parseUint64(rawAmount, allowZero)
}

func PolicyKind(label string) (types.PolicyKind, error) {
	items := []string{}
	for k := types.Immediate; k <= types.CliffLinear; k++ {
		items = append(items, k.String())
	}
	promptSelect := promptui.Select{
		Label: label,
		Items: items,
	}
	_, choice, err := promptSelect.Run()
	if err != nil {
		return 0, err
	}
	return types.ParsePolicyKind(choice)
}

func parseYesNo(input string) (bool, error) {
	if len(input) == 0 {
		return false, ErrInputEmpty
	}
	switch strings.ToLower(input) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, ErrInvalidChoice
	}
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label: "continue (y/n)",
		Validate: func(input string) error {
			_, err := parseYesNo(input)
			return err
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont, err := parseYesNo(rawContinue)
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}
