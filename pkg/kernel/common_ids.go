package kernel

// AccountID is the stable subject identifier issued by the identity provider
type AccountID string

func NewAccountID(id string) AccountID { return AccountID(id) }
func (a AccountID) String() string     { return string(a) }
func (a AccountID) IsEmpty() bool      { return string(a) == "" }

// RunID identifies one ingestion run
type RunID string

func NewRunID(id string) RunID { return RunID(id) }
func (r RunID) String() string { return string(r) }
func (r RunID) IsEmpty() bool  { return string(r) == "" }
