package types

// GenesisState defines the ibc module's genesis state: the sequences the
// client, connection and channel identifiers are generated from.
type GenesisState struct {
	NextClientSequence     uint64 `json:"next_client_sequence" yaml:"next_client_sequence"`
	NextConnectionSequence uint64 `json:"next_connection_sequence" yaml:"next_connection_sequence"`
	NextChannelSequence    uint64 `json:"next_channel_sequence" yaml:"next_channel_sequence"`
}

// DefaultGenesisState returns the ibc module's default genesis state.
func DefaultGenesisState() GenesisState {
	return GenesisState{}
}
