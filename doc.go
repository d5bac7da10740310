/*
Package voxflow is a stateless interpreter for user-authored call flows,
exposed as a telephony provider webhook.

A call flow is a directed graph of nodes (say, gather, forward,
multi_forward, pause, play, hangup, sms) attached to a phone number. On
every provider callback the interpreter resolves the flow for the dialed
number, executes exactly one node, and answers with a single XML control
envelope. All conversation state (current node, dialed number, gather
attempt counter) travels in the callback URLs embedded in that envelope,
so any server instance can answer any callback.

# Usage

Initialize a Service pointed at a directory of YAML flow files and mount
its handler:

	package main

	import (
		"log"
		"net/http"

		"github.com/voxflow/voxflow"
	)

	func main() {
		svc, err := voxflow.New("./flows")
		if err != nil {
			log.Fatal(err)
		}
		log.Fatal(http.ListenAndServe(":8080", svc.Handler()))
	}

Flows can also be served from Redis or from memory by injecting a
resolver with WithResolver; see pkg/adapters. The voxflow CLI wraps the
same Service with serve, validate and graph commands.

# Failure Behavior

The webhook contract is strict: the provider cannot turn a bare HTTP
error into a voice action, so every failure (unknown number, broken
flow, store outage, even a panic) is answered with status 200 and a
spoken apology followed by a hangup.
*/
package voxflow
