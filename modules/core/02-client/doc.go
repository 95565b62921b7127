/*
Package client implements the ICS 02 client semantics for the eclipse host.

The keeper hands out xx-eclipse-{N} identifiers, routes every client operation
to the light client module registered for the client type and exposes client
status, latest height and consensus timestamps to the connection and channel
handshakes. A client that observed misbehaviour is frozen and every later
update or proof verification against it fails.
*/
package client
