package domain

import "encoding/json"

// ChangeRecord is the part of a change API record the lifecycle reads.
type ChangeRecord struct {
	SysID  FieldValue `json:"sys_id"`
	Number FieldValue `json:"number"`
	State  FieldValue `json:"state"`
}

// ChangeResponse is the {"result": {...}} envelope returned by the change API.
// Raw keeps the full body for logging and the get command.
type ChangeResponse struct {
	Result ChangeRecord    `json:"result"`
	Raw    json.RawMessage `json:"-"`
}

// StateUpdateRequest is the partial update body used for a transition.
type StateUpdateRequest struct {
	State int `json:"state"`
}
