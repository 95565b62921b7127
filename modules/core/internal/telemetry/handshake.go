package telemetry

import (
	metrics "github.com/hashicorp/go-metrics"

	ibcmetrics "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/metrics"
)

// ReportConnectionHandshake increments the counter of the given connection handshake step,
// e.g. "open-init" or "open-confirm".
func ReportConnectionHandshake(step, connectionID string) {
	metrics.IncrCounterWithLabels(
		[]string{"ibc", "connection", step},
		1,
		[]metrics.Label{{Name: ibcmetrics.LabelConnectionID, Value: connectionID}},
	)
}

// ReportChannelHandshake increments the counter of the given channel handshake step.
func ReportChannelHandshake(step, portID, channelID string) {
	metrics.IncrCounterWithLabels(
		[]string{"ibc", "channel", step},
		1,
		[]metrics.Label{
			{Name: ibcmetrics.LabelPortID, Value: portID},
			{Name: ibcmetrics.LabelChannelID, Value: channelID},
		},
	)
}
