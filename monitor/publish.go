// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-zeromq/zmq4"
)

// SampleTopic is the first frame of every published message so
// subscribers can filter.
const SampleTopic = "sample"

// Publisher broadcasts samples over a zeromq pub socket. Slow or
// absent subscribers never block the sampler, pub sockets drop.
type Publisher struct {
	sock zmq4.Socket
}

// NewPublisher binds a pub socket to addr, e.g. tcp://127.0.0.1:7400.
func NewPublisher(ctx context.Context, addr string) (*Publisher, error) {
	sock := zmq4.NewPub(ctx)
	if err := sock.Listen(addr); err != nil {
		return nil, fmt.Errorf("monitor: zmq listen %s failed: %v", addr, err)
	}
	log.Infof("monitor: publishing samples on %s", addr)
	return &Publisher{sock: sock}, nil
}

// Publish broadcasts one sample as a two frame topic + json message.
func (p *Publisher) Publish(s *Sample) error {
	buf, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.sock.Send(zmq4.NewMsgFrom([]byte(SampleTopic), buf))
}

func (p *Publisher) Close() error {
	return p.sock.Close()
}
