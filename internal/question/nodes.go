package question

// Node is a renderer-ready question element. Each variant is a plain struct
// whose JSON shape matches what the rendering layer consumes; assembling a
// page is just collecting nodes in order.
type Node interface {
	// QuestionName returns the question id the node was generated from.
	QuestionName() string
}

// Select is the shared shape of radiogroup, checkbox and dropdown questions.
type Select struct {
	Type         string            `json:"type"`
	Name         string            `json:"name"`
	Title        map[string]string `json:"title"`
	Choices      []Choice          `json:"choices"`
	VisibleIf    string            `json:"visibleIf,omitempty"`
	IsRequired   bool              `json:"isRequired"`
	HasOther     bool              `json:"hasOther,omitempty"`
	OtherText    map[string]string `json:"otherText,omitempty"`
	HasNone      bool              `json:"hasNone,omitempty"`
	NoneText     map[string]string `json:"noneText,omitempty"`
	DefaultValue string            `json:"defaultValue,omitempty"`
	Description  string            `json:"description,omitempty"`
}

func (s *Select) QuestionName() string { return s.Name }

// Pip labels one endpoint of a slider scale.
type Pip struct {
	Value int               `json:"value"`
	Text  map[string]string `json:"text"`
}

// Slider is a continuous 0-100 scale with two labeled endpoints.
type Slider struct {
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Title       map[string]string `json:"title"`
	Description map[string]string `json:"description"`
	RangeMin    int               `json:"rangeMin"`
	RangeMax    int               `json:"rangeMax"`
	PipsMode    string            `json:"pipsMode"`
	PipsValues  []int             `json:"pipsValues"`
	PipsDensity int               `json:"pipsDensity"`
	PipsText    []Pip             `json:"pipsText"`
	Tooltips    bool              `json:"tooltips"`
	VisibleIf   string            `json:"visibleIf,omitempty"`
	IsRequired  bool              `json:"isRequired"`
}

func (s *Slider) QuestionName() string { return s.Name }

// Comment is a multi-line free-text input.
type Comment struct {
	Type       string            `json:"type"`
	Name       string            `json:"name"`
	Title      map[string]string `json:"title"`
	VisibleIf  string            `json:"visibleIf,omitempty"`
	IsRequired bool              `json:"isRequired"`
}

func (c *Comment) QuestionName() string { return c.Name }

// TextInput is a single-line input with a kind tag (text, number, email).
type TextInput struct {
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Title       map[string]string `json:"title"`
	InputType   string            `json:"inputType"`
	PlaceHolder map[string]string `json:"placeHolder,omitempty"`
	VisibleIf   string            `json:"visibleIf,omitempty"`
	IsRequired  bool              `json:"isRequired"`
}

func (t *TextInput) QuestionName() string { return t.Name }

// HTMLBlock is a static display element (headers and rendered info texts).
type HTMLBlock struct {
	Type      string            `json:"type"`
	Name      string            `json:"name"`
	HTML      map[string]string `json:"html"`
	VisibleIf string            `json:"visibleIf,omitempty"`
}

func (h *HTMLBlock) QuestionName() string { return h.Name }

// Image is a static image element. The layout's title cell holds the
// filename, resolved against the compiler's asset prefix.
type Image struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	ImageLink string `json:"imageLink"`
	VisibleIf string `json:"visibleIf,omitempty"`
}

func (i *Image) QuestionName() string { return i.Name }

// DatePicker is a date input bounded to the last six months.
type DatePicker struct {
	Type                  string            `json:"type"`
	Name                  string            `json:"name"`
	Title                 map[string]string `json:"title"`
	DateFormat            string            `json:"dateFormat"`
	VisibleIf             string            `json:"visibleIf,omitempty"`
	IsRequired            bool              `json:"isRequired"`
	StartDate             string            `json:"startDate"`
	EndDate               string            `json:"endDate"`
	TodayHighlight        bool              `json:"todayHighlight"`
	ClearBtn              bool              `json:"clearBtn"`
	AutoClose             bool              `json:"autoClose"`
	DaysOfWeekHighlighted string            `json:"daysOfWeekHighlighted"`
	WeekStart             int               `json:"weekStart"`
	DisableTouchKeyboard  bool              `json:"disableTouchKeyboard"`
	Language              string            `json:"language"`
}

func (d *DatePicker) QuestionName() string { return d.Name }
