/*
Package connection implements the ICS 03 connection handshake.

A connection pairs a light client on this chain with a light client on the
counterparty. The four handshake steps move a ConnectionEnd through INIT,
TRYOPEN and OPEN, and every step after the first proves the counterparty's
connection end against the consensus state its client stored at the proof
height. Versions are negotiated during the handshake and the ordering features
of the agreed version bound the channels later opened over the connection.
*/
package connection
