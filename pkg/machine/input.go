// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

func (mc *Machine) keyDown(key uint8) bool {
	return mc.State.Keys[key&0xF]
}

// Updates the state of one keypad key (0x0-0xF). A press arriving while the
// machine waits on FX0A completes that instruction.
func (mc *Machine) SetKey(key uint8, pressed bool) {
	if key >= KEY_COUNT {
		return
	}

	wasPressed := mc.State.Keys[key]
	mc.State.Keys[key] = pressed

	if pressed && !wasPressed && mc.State.Mode == MODE_AWAIT_KEY {
		mc.State.Registers[mc.State.WaitReg] = key
		mc.State.Program += 2
		mc.State.Mode = MODE_RUNNING
	}
}

func (mc *Machine) PressKey(key uint8) {
	mc.SetKey(key, true)
}

func (mc *Machine) ReleaseKey(key uint8) {
	mc.SetKey(key, false)
}

func (mc *Machine) ReleaseKeys() {
	for key := range mc.State.Keys {
		mc.SetKey(uint8(key), false)
	}
}

// Abandons a pending FX0A. The program counter stays on the instruction,
// so the next Step waits again.
func (mc *Machine) CancelKeyWait() {
	if mc.State.Mode == MODE_AWAIT_KEY {
		mc.State.Mode = MODE_RUNNING
	}
}
