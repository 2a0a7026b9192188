package constants

const (
	Version = "v0.1.0"
	AppName = "Code Challenge"
)
