package common

// Blockchain names the chain a wallet balance lives on.
type Blockchain string

const (
	BlockchainOsmosis  Blockchain = "Osmosis"
	BlockchainEthereum Blockchain = "Ethereum"
	BlockchainArbitrum Blockchain = "Arbitrum"
	BlockchainZilliqa  Blockchain = "Zilliqa"
	BlockchainNeo      Blockchain = "Neo"
)

var supportedBlockchains = map[Blockchain]struct{}{
	BlockchainOsmosis:  {},
	BlockchainEthereum: {},
	BlockchainArbitrum: {},
	BlockchainZilliqa:  {},
	BlockchainNeo:      {},
}

// IsSupported reports whether the chain is one of the known display chains.
// Names are case-sensitive.
func (b Blockchain) IsSupported() bool {
	_, ok := supportedBlockchains[b]
	return ok
}

func (b Blockchain) String() string {
	return string(b)
}
