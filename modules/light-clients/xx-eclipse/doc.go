/*
Package eclipse implements a concrete LightClientModule, ClientState, ConsensusState
and Header for tracking an eclipse chain.

An eclipse chain commits its IBC state into a multistore whose root is published
in every block header. The light client trusts the headers it is given, stores
one consensus state (commitment root and timestamp) per header height and
verifies ICS-23 proofs against those roots. Two different roots submitted for the
same height are treated as misbehaviour and freeze the client.

Note that client identifiers are expected to be in the form: xx-eclipse-{N}.
Client identifiers are generated and validated by core IBC, unexpected client identifiers will result in errors.
*/
package eclipse
