package runs

const Theory = `
# Runs

A run compiles a machine document, executes it on an initial tape, and reports the result.

1. **Compile**: the document is loaded with its includes expanded depth first, then linked. Link errors are fatal; nothing is executed.
2. **Execute**: the interpreter takes rules until the machine reaches ACCEPT or REJECT, a hook stops it, the step limit is reached or the context is done. Trace hooks are installed from the configured options.
3. **Persist**: a result is a plain JSON document (outcome, final state, head, tape). It is written to a temporary file and renamed, so a reader never observes a partial result.
`
