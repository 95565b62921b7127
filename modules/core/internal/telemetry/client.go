package telemetry

import (
	metrics "github.com/hashicorp/go-metrics"

	ibcmetrics "github.com/eclipse-ibc/eclipse-ibc-go/modules/core/metrics"
)

// ReportCreateClient increments the client creation counter.
func ReportCreateClient(clientType string) {
	metrics.IncrCounterWithLabels(
		[]string{"ibc", "client", "create"},
		1,
		[]metrics.Label{{Name: ibcmetrics.LabelClientType, Value: clientType}},
	)
}

// ReportUpdateClient increments the client update counter, or the misbehaviour
// counter if the update froze the client.
func ReportUpdateClient(foundMisbehaviour bool, clientType, clientID string) {
	labels := []metrics.Label{
		{Name: ibcmetrics.LabelClientType, Value: clientType},
		{Name: ibcmetrics.LabelClientID, Value: clientID},
	}

	if foundMisbehaviour {
		labels = append(labels, metrics.Label{Name: ibcmetrics.LabelMsgType, Value: "update"})
		metrics.IncrCounterWithLabels([]string{"ibc", "client", "misbehaviour"}, 1, labels)
		return
	}

	labels = append(labels, metrics.Label{Name: ibcmetrics.LabelUpdateType, Value: "msg"})
	metrics.IncrCounterWithLabels([]string{"ibc", "client", "update"}, 1, labels)
}
