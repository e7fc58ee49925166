package value

// Field — поле документа фразы. Ключи в хранилище настраиваются,
// поэтому код оперирует перечислением, а не строками.
type Field int

const (
	FieldID Field = iota
	FieldText
)

// FieldKeys сопоставляет поля с ключами конкретной сущности хранилища.
type FieldKeys struct {
	ID   string
	Text string
}

// DefaultFieldKeys — ключи сущности CF из админки магазина.
var DefaultFieldKeys = FieldKeys{ //nolint:gochecknoglobals
	ID:   "id",
	Text: "CookieFortune",
}

func (k FieldKeys) Key(f Field) string {
	switch f {
	case FieldID:
		return k.ID
	case FieldText:
		return k.Text
	default:
		return ""
	}
}

type DocumentField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Document — обобщённая форма документа "список полей", в которой
// GraphQL-шлюз принимает мутации.
type Document struct {
	Fields []DocumentField `json:"fields"`
}

// Get возвращает значение поля и признак его наличия.
func (d Document) Get(keys FieldKeys, f Field) (string, bool) {
	key := keys.Key(f)
	for _, field := range d.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Set заменяет значение поля или добавляет его в конец.
func (d *Document) Set(keys FieldKeys, f Field, v string) {
	key := keys.Key(f)
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			d.Fields[i].Value = v
			return
		}
	}
	d.Fields = append(d.Fields, DocumentField{Key: key, Value: v})
}

// Map разворачивает документ в плоский объект, как его ждёт REST API.
func (d Document) Map() map[string]string {
	m := make(map[string]string, len(d.Fields))
	for _, field := range d.Fields {
		m[field.Key] = field.Value
	}
	return m
}
