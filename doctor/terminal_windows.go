package doctor

func resetTerminal() {}
