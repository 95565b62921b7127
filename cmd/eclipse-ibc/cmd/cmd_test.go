package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eclipse-ibc/eclipse-ibc-go/cmd/eclipse-ibc/cmd"
	connectiontypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/04-channel/types"
	porttypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/05-port/types"
	host "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/24-host"
	ibcerrors "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/errors"
	ibctypes "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/types"
	eclipse "github.com/eclipse-ibc/eclipse-ibc-go/modules/light-clients/xx-eclipse"
)

type txResponse struct {
	Response struct {
		ClientId     string `json:"client_id"`     //nolint:revive
		ConnectionId string `json:"connection_id"` //nolint:revive
		ChannelId    string `json:"channel_id"`    //nolint:revive
		Version      string `json:"version"`
	} `json:"response"`
}

type CLITestSuite struct {
	suite.Suite

	homeA string
	homeB string
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.homeA = filepath.Join(s.T().TempDir(), "a")
	s.homeB = filepath.Join(s.T().TempDir(), "b")

	s.run(s.homeA, "", "admin", "init-storage-account", "--chain-id", "eclipse-a")
	s.run(s.homeB, "", "admin", "init-storage-account", "--chain-id", "eclipse-b")
}

// execute runs the command line against home with stdin and returns stdout.
func (s *CLITestSuite) execute(home, stdin string, args ...string) (string, error) {
	rootCmd := cmd.NewRootCmd()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--home", home, "--log-level", "error"))

	err := rootCmd.Execute()
	return out.String(), err
}

func (s *CLITestSuite) run(home, stdin string, args ...string) string {
	out, err := s.execute(home, stdin, args...)
	s.Require().NoError(err, "eclipse-ibc %s", strings.Join(args, " "))
	return out
}

// relay generates a datagram on src and submits it to dst.
func (s *CLITestSuite) relay(src, dst string, generate, submit []string) txResponse {
	datagram := s.run(src, "", append([]string{"generate"}, generate...)...)
	out := s.run(dst, datagram, append([]string{"tx"}, submit...)...)

	var res txResponse
	s.Require().NoError(json.Unmarshal([]byte(out), &res))
	return res
}

// updateClient updates the client on dst tracking src to the latest src header.
func (s *CLITestSuite) updateClient(src, dst, clientID string) {
	s.relay(src, dst, []string{"client", "update", "--client-id", clientID}, []string{"client", "update"})
}

func (s *CLITestSuite) TestInitStorageAccount() {
	config, err := os.ReadFile(filepath.Join(s.homeA, "config.toml"))
	s.Require().NoError(err)
	s.Require().Contains(string(config), "eclipse-a")

	var header eclipse.Header
	s.Require().NoError(json.Unmarshal([]byte(s.run(s.homeA, "", "query", "header")), &header))
	s.Require().Equal(uint64(1), header.Height.RevisionHeight)

	_, err = s.execute(s.homeA, "", "admin", "init-storage-account", "--chain-id", "eclipse-a")
	s.Require().Error(err)
}

func (s *CLITestSuite) TestHandshake() {
	clientA := s.relay(s.homeB, s.homeA, []string{"client", "create"}, []string{"client", "create"}).Response.ClientId
	clientB := s.relay(s.homeA, s.homeB, []string{"client", "create"}, []string{"client", "create"}).Response.ClientId
	s.Require().Equal("xx-eclipse-0", clientA)
	s.Require().Equal("xx-eclipse-0", clientB)

	// connection
	datagram := s.run(s.homeA, "", "generate", "connection", "open-init", "--client-id", clientA, "--counterparty-client-id", clientB)
	var res txResponse
	s.Require().NoError(json.Unmarshal([]byte(s.run(s.homeA, datagram, "tx", "connection", "open-init")), &res))
	connA := res.Response.ConnectionId

	s.updateClient(s.homeA, s.homeB, clientB)
	connB := s.relay(s.homeA, s.homeB,
		[]string{"connection", "open-try", "--connection-id", connA},
		[]string{"connection", "open-try"},
	).Response.ConnectionId

	s.updateClient(s.homeB, s.homeA, clientA)
	s.relay(s.homeB, s.homeA, []string{"connection", "open-ack", "--connection-id", connB}, []string{"connection", "open-ack"})

	s.updateClient(s.homeA, s.homeB, clientB)
	s.relay(s.homeA, s.homeB, []string{"connection", "open-confirm", "--connection-id", connA}, []string{"connection", "open-confirm"})

	for home, connectionID := range map[string]string{s.homeA: connA, s.homeB: connB} {
		var connection connectiontypes.ConnectionEnd
		s.Require().NoError(json.Unmarshal([]byte(s.run(home, "", "query", "connection", connectionID)), &connection))
		s.Require().Equal(connectiontypes.OPEN, connection.State)
	}

	// channel
	s.run(s.homeA, "", "tx", "port", "bind")
	s.run(s.homeB, "", "tx", "port", "bind")

	datagram = s.run(s.homeA, "", "generate", "channel", "open-init", "--connection-id", connA)
	s.Require().NoError(json.Unmarshal([]byte(s.run(s.homeA, datagram, "tx", "channel", "open-init")), &res))
	chanA := res.Response.ChannelId

	s.updateClient(s.homeA, s.homeB, clientB)
	chanB := s.relay(s.homeA, s.homeB,
		[]string{"channel", "open-try", "--channel-id", chanA},
		[]string{"channel", "open-try"},
	).Response.ChannelId

	s.updateClient(s.homeB, s.homeA, clientA)
	s.relay(s.homeB, s.homeA, []string{"channel", "open-ack", "--channel-id", chanB}, []string{"channel", "open-ack"})

	s.updateClient(s.homeA, s.homeB, clientB)
	s.relay(s.homeA, s.homeB, []string{"channel", "open-confirm", "--channel-id", chanA}, []string{"channel", "open-confirm"})

	for home, channelID := range map[string]string{s.homeA: chanA, s.homeB: chanB} {
		var channel channeltypes.Channel
		s.Require().NoError(json.Unmarshal([]byte(s.run(home, "", "query", "channel", "mock", channelID)), &channel))
		s.Require().Equal(channeltypes.OPEN, channel.State)

		var sequences struct {
			NextSequenceSend uint64 `json:"next_sequence_send"`
			NextSequenceRecv uint64 `json:"next_sequence_recv"`
			NextSequenceAck  uint64 `json:"next_sequence_ack"`
		}
		s.Require().NoError(json.Unmarshal([]byte(s.run(home, "", "query", "sequences", "mock", channelID)), &sequences))
		s.Require().Equal(uint64(1), sequences.NextSequenceSend)
		s.Require().Equal(uint64(1), sequences.NextSequenceRecv)
		s.Require().Equal(uint64(1), sequences.NextSequenceAck)
	}

	out := s.run(s.homeB, "", "query", "proof", "channelEnds/ports/mock/channels/"+chanB, "--output", "yaml")
	s.Require().Contains(out, "proof_height:")
}

func (s *CLITestSuite) TestReleasePort() {
	_, err := s.execute(s.homeA, "", "tx", "port", "release")
	s.Require().ErrorIs(err, porttypes.ErrPortNotBound)

	s.run(s.homeA, "", "tx", "port", "bind")
	s.Require().Contains(s.run(s.homeA, "", "query", "port", "mock"), "mock")

	s.run(s.homeA, "", "tx", "port", "release")

	_, err = s.execute(s.homeA, "", "query", "port", "mock")
	s.Require().ErrorIs(err, porttypes.ErrPortNotBound)

	datagram := s.run(s.homeA, "", "generate", "port", "release")
	var parsed ibctypes.Datagram
	s.Require().NoError(json.Unmarshal([]byte(datagram), &parsed))
	s.Require().Equal(ibctypes.TypeReleasePort, parsed.Type)
}

func (s *CLITestSuite) TestSubmitWrongDatagramType() {
	datagram := s.run(s.homeA, "", "generate", "port", "bind")

	_, err := s.execute(s.homeA, datagram, "tx", "client", "create")
	s.Require().ErrorIs(err, ibcerrors.ErrInvalidType)
}

func (s *CLITestSuite) TestSubmitDatagramFile() {
	datagram := s.run(s.homeB, "", "generate", "client", "create")

	var parsed ibctypes.Datagram
	s.Require().NoError(json.Unmarshal([]byte(datagram), &parsed))
	s.Require().Equal(ibctypes.TypeCreateClient, parsed.Type)

	file := filepath.Join(s.T().TempDir(), "create-client.json")
	s.Require().NoError(os.WriteFile(file, []byte(datagram), 0o600))

	s.run(s.homeA, "", "tx", "client", "create", file)

	out := s.run(s.homeA, "", "query", "clients", "--output", "yaml")
	s.Require().Contains(out, "xx-eclipse-0")
	s.Require().Contains(out, "eclipse-b")
}

func (s *CLITestSuite) TestQueryNotFound() {
	_, err := s.execute(s.homeA, "", "query", "connection", "connection-0")
	s.Require().Error(err)

	_, err = s.execute(s.homeA, "", "query", "proof", "not/a/known/path")
	s.Require().Error(err)

	_, err = s.execute(s.homeA, "", "query", "sequences", "mock", "channel-0")
	s.Require().ErrorIs(err, channeltypes.ErrSequenceSendNotFound)

	_, err = s.execute(s.homeA, "", "query", "channel", "mock", "channel/0")
	s.Require().ErrorIs(err, host.ErrInvalidID)
}

func (s *CLITestSuite) TestMetrics() {
	datagram := s.run(s.homeB, "", "generate", "client", "create")

	rootCmd := cmd.NewRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(datagram))
	rootCmd.SetArgs([]string{"tx", "client", "create", "--home", s.homeA, "--log-level", "disabled", "--metrics"})

	s.Require().NoError(rootCmd.Execute())
	s.Require().Contains(stderr.String(), "eclipse-ibc.ibc.client.create")
}
