package http

import (
	"encoding/json"

	"github.com/boogeyman0929/chat-backend/internal/core"
	"github.com/boogeyman0929/chat-backend/internal/proto"
)

// inboundToCommand maps a wire envelope to a core command. Empty bodies and
// unknown targets are not rejected here: the hub drops them silently, and the
// transport stays out of routing policy.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Channel == "" {
			join.Channel = proto.DefaultChannel
		}
		return &core.Command{
			Kind:    core.CommandJoin,
			Channel: join.Channel,
		}, nil, nil

	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Channel == "" {
			msg.Channel = proto.DefaultChannel
		}
		return &core.Command{
			Kind:    core.CommandSend,
			Channel: msg.Channel,
			Body:    msg.Message,
		}, nil, nil

	case proto.InboundTypePrivateMessage:
		var pm proto.PrivateMessageData
		if err := json.Unmarshal(inbound.Data, &pm); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:   core.CommandPrivate,
			Target: pm.Target,
			Body:   pm.Msg,
		}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventHistory:
		messages := make([]proto.ChatMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, chatMessage(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatHistory,
			Data:  messages,
		}

	case core.EventUserList:
		users := make([]proto.UserEntry, 0, len(event.Users))
		for _, u := range event.Users {
			users = append(users, proto.UserEntry{Username: u.Name, Role: string(u.Role)})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserList,
			Data:  users,
		}

	case core.EventChannelMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventReceiveMessage,
			Data:  chatMessage(event.Message),
		}

	case core.EventPrivateMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventReceivePrivate,
			Data:  proto.PrivateMessage{From: event.From, Msg: event.Body},
		}

	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func chatMessage(m core.Message) proto.ChatMessage {
	return proto.ChatMessage{User: m.Author, Msg: m.Body, Role: string(m.Role)}
}
