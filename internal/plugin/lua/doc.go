// Package lua drives an outliner session from Lua scripts using
// gopher-lua.
//
// Scripts see a global table named outliner:
//
//	outliner.key("Enter", "Tab")      -- press keys by name
//	outliner.type("hello")            -- type text
//	outliner.lines()                  -- {{id=, depth=, text=}, ...}
//	outliner.caret()                  -- line index (1-based) and offset, or nil
//	outliner.dump()                   -- YAML snapshot of the tree
//	outliner.command(name, title, fn) -- add a prompt command; fn(line_id)
//	outliner.run(name)                -- run a prompt command on the current line
//	outliner.focus(id, offset)        -- put the caret in a block by id
//	outliner.log(msg)                 -- write to the application log
//
// Only the base, table, string and math libraries are available. print
// writes to the log.
package lua
