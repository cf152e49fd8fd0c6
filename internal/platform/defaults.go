package platform

// defaultEntries is the built-in platform table. Group members must be
// board aliases declared in this table.
var defaultEntries = []Entry{
	Board("uno", "arduino:avr:uno"),
	Board("leonardo", "arduino:avr:leonardo"),
	Board("mega2560", "arduino:avr:mega:cpu=atmega2560"),
	Board("zero", "arduino:samd:arduino_zero_native"),
	Board("cpx", "arduino:samd:adafruit_circuitplayground_m0"),
	Board("esp8266", "esp8266:esp8266:huzzah:eesz=4M3M,xtal=80"),
	Board("esp32", "esp32:esp32:featheresp32:FlashFreq=80"),
	Board("rak4631", "rakwireless:nrf52:WisCoreRAK4631Board:softdevice=s140v6,debug=l0"),
	Board("rak4631-rui", "rak_rui:nrf52:WisCoreRAK4631Board:softdevice=s140v6,debug=l0"),
	Board("rak3172-evaluation-rui", "rak_rui:stm32:WisDuoRAK3172EvaluationBoard:debug=l0"),
	Board("rak3172-T-rui", "rak_rui:stm32:WisDuoRAK3172TBoard:debug=l0"),
	Board("rak11200", "rakwireless:esp32:WisCore_RAK11200_Board"),
	Board("rak11300", "rakwireless:mbed_rp2040:WisCoreRAK11300Board"),
	Group("rak_platforms", "rak4631", "rak11200", "rak11300"),
	Group("rak_platforms-test", "rak4631", "rak11200", "rak11300"),
	Group("rak_platforms_rui-test", "rak4631-rui", "rak3172-evaluation-rui", "rak3172-T-rui"),
}

// DefaultRegistry returns the built-in platform table.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultEntries...)
	if err != nil {
		panic("platform: invalid built-in table: " + err.Error())
	}
	return r
}
