package config

type Network struct {
	Name     string
	ChainID  int
	RPCURL   string
	Explorer string
	Symbol   string
	Decimals int
}

var Ethereum = Network{
	Name:     "Ethereum Mainnet",
	ChainID:  1,
	RPCURL:   "https://ethereum-rpc.publicnode.com",
	Explorer: "https://etherscan.io/",
	Symbol:   "ETH",
	Decimals: 18,
}
