package common

type Module string

const (
	ModuleWallet Module = "wallet"
	ModuleSwap   Module = "swap"
)

func (m Module) String() string {
	return string(m)
}
