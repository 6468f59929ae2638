package voice

// used by the external tests in this directory

const (
	FakeEmail    = fakeEmail
	FakePassword = fakePassword
)

var NewFakeVoice = newFakeVoice

func (f *fakeVoice) Endpoints() Endpoints {
	return f.endpoints()
}

func (f *fakeVoice) SetExport(csv string) {
	f.export = csv
}
