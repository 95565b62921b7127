/*
Package channel implements the channel opening handshake of the ICS 04 - Channel
and Packet Semantics specification
(https://github.com/cosmos/ibc/tree/main/spec/core/ics-004-channel-and-packet-semantics).
It defines types and methods for safely creating two stateful objects (channel
ends) on two separate chains, each bound to a port owned by a module and
associated with an OPEN connection.

The main type is Channel, which defines a stateful object on a chain that
pairs a module on one chain with the module owning the other end of the
channel on the counterparty chain.
*/
package channel
