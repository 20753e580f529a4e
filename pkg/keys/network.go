package keys

import (
	"fmt"
	"strings"
)

// Network selects the address prefix.
type Network uint8

const (
	Mainnet Network = iota
	Testnet
)

var (
	mainnetPrefix = [3]byte{0xcd, 0x14, 0x00}
	testnetPrefix = [3]byte{0x11, 0xc2, 0x00}
)

// Prefix returns the three version bytes placed in front of a public key
// when it is encoded as an address.
func (n Network) Prefix() [3]byte {
	if n == Testnet {
		return testnetPrefix
	}
	return mainnetPrefix
}

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("Network(%d)", uint8(n))
	}
}

// ParseNetwork accepts "mainnet" or "testnet", case-insensitively.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	default:
		return 0, fmt.Errorf("unknown network %q", s)
	}
}

// UnmarshalText lets Network be used directly in env and flag decoding.
func (n *Network) UnmarshalText(text []byte) error {
	parsed, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func networkForPrefix(prefix []byte) (Network, bool) {
	switch {
	case string(prefix) == string(mainnetPrefix[:]):
		return Mainnet, true
	case string(prefix) == string(testnetPrefix[:]):
		return Testnet, true
	}
	return 0, false
}
