package autosave

import "context"

func NewFakeAutoSaver() AutoSaver {
	return &fakeAutoSaverImpl{}
}

type fakeAutoSaverImpl struct {
}

func (impl *fakeAutoSaverImpl) Touch() {

}

func (impl *fakeAutoSaverImpl) Start() {

}

func (impl *fakeAutoSaverImpl) Stop() {

}

func (impl *fakeAutoSaverImpl) Started() bool {
	return false
}

func (impl *fakeAutoSaverImpl) Flush(_ context.Context) error {
	return nil
}
