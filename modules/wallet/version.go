package wallet

const Version = "v0.1.0"
