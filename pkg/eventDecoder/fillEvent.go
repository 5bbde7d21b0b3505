package eventDecoder

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var OpenBookV2ProgramID = solana.MustPublicKeyFromBase58("opnb2LAfJYbRMAHHvqjCwQxanZn7ReEHp1k81EohpZb")

// FillEventDiscriminator prefixes every serialized fill event the program
// emits through "Program data:" lines.
var FillEventDiscriminator = [DiscriminatorLength]byte{0xe4, 0x4b, 0xa8, 0x8d, 0x58, 0x27, 0xd0, 0x4e}

// fillEvent is the on-wire borsh layout. The quantities are serialized as
// u128 but never exceed u64 range in practice; Padding is reserved space
// the program writes zeroes into.
type fillEvent struct {
	Price         bin.Uint128
	BaseQuantity  bin.Uint128
	QuoteQuantity bin.Uint128
	Padding       [40]byte
}

type FillEventDecoder struct{}

func NewFillEventDecoder() *FillEventDecoder {
	return &FillEventDecoder{}
}

func (fed *FillEventDecoder) Discriminator() [DiscriminatorLength]byte {
	return FillEventDiscriminator
}

// DecodeEvent expects the payload bytes following the discriminator and
// renders the fill with the wide integers narrowed to plain numbers and
// the padding dropped.
func (fed *FillEventDecoder) DecodeEvent(data []byte) (string, error) {
	var event fillEvent
	decoder := bin.NewBorshDecoder(data)
	if err := decoder.Decode(&event); err != nil {
		return "", errors.Wrapf(err, "failed to decode fill event")
	}

	return fmt.Sprintf(
		"Fill event: price=%d baseQuantity=%d quoteQuantity=%d",
		event.Price.BigInt().Uint64(),
		event.BaseQuantity.BigInt().Uint64(),
		event.QuoteQuantity.BigInt().Uint64(),
	), nil
}
