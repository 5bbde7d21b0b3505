// Package eventDecoder decodes binary event payloads that programs embed
// in "Program data:" log lines. Decoders are registered per program
// address; a payload is only handed to a decoder when its leading 8 bytes
// match the decoder's discriminator.
package eventDecoder

import (
	"github.com/gagliardetto/solana-go"
)

const DiscriminatorLength = 8

// Decoder turns the payload bytes that follow the discriminator into a
// display-ready string.
type Decoder interface {
	Discriminator() [DiscriminatorLength]byte
	DecodeEvent(data []byte) (string, error)
}

type Registry struct {
	decoders map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
	}
}

// NewRegistryWithDefaults returns a registry preloaded with every decoder
// this module ships.
func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.Register(OpenBookV2ProgramID, NewFillEventDecoder())
	return r
}

func (r *Registry) Register(program solana.PublicKey, d Decoder) {
	r.decoders[program.String()] = d
}

func (r *Registry) Lookup(address string) (Decoder, bool) {
	d, ok := r.decoders[address]
	return d, ok
}

// Matches reports whether payload is long enough to carry a discriminator
// and that discriminator equals the decoder's.
func Matches(d Decoder, payload []byte) bool {
	if len(payload) < DiscriminatorLength {
		return false
	}
	want := d.Discriminator()
	for i := 0; i < DiscriminatorLength; i++ {
		if payload[i] != want[i] {
			return false
		}
	}
	return true
}
