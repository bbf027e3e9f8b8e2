package hmr

type MessageType string

const (
	MsgTypeConnect    MessageType = "connect"
	MsgTypeReload     MessageType = "reload"
	MsgTypeWasmReload MessageType = "wasm-reload"
	MsgTypeRoutes     MessageType = "routes"
)

type Message struct {
	Type     MessageType `json:"type"`
	ClientID string      `json:"clientId,omitempty"`
	Path     string      `json:"path,omitempty"`
	Hash     string      `json:"hash,omitempty"`
	Routes   []string    `json:"routes,omitempty"`
}
