package runtime

import (
	"reflect"

	"loomlang/types"
)

// Send performs a blocking rendezvous send on the given outbound endpoint.
func Send(ch endpoint, v types.Value) {
	ch <- v
}

// Receive performs a blocking rendezvous receive on the given inbound
// endpoint.
func Receive(ch endpoint) types.Value {
	return <-ch
}

// SelectReceive blocks until any one of the given endpoints becomes ready,
// then returns the index of the endpoint that fired along with the value
// received. When more than one endpoint is simultaneously ready,
// reflect.Select's pseudo-random tie-break supplies the non-deterministic,
// weakly-fair choice the select-receive protocol requires.
func SelectReceive(endpoints []endpoint) (int, types.Value) {
	cases := make([]reflect.SelectCase, len(endpoints))
	for i, ch := range endpoints {
		cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)}
	}
	chosen, recv, _ := reflect.Select(cases)
	return chosen, recv.Interface().(types.Value)
}
