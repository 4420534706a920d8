package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "marketplace",
	"name": "client_event",
	"fields": [
		{"name": "user_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "qty", "type": "long"},
		{"name": "at", "type": "long"}
	]
}`

// ClientEventV1 is the wire shape of one client event. At is unix
// milliseconds.
type ClientEventV1 struct {
	UserID    string `avro:"user_id"`
	Kind      string `avro:"kind"`
	ProductID string `avro:"product_id"`
	Qty       int64  `avro:"qty"`
	At        int64  `avro:"at"`
}
